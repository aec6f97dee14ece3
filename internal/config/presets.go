package config

// Presets bundle canvas dimensions that come up repeatedly, so quick runs
// don't need a config file.
var presets = map[string]*Config{
	"pxls": {
		Width:       2000,
		Height:      2000,
		Style:       DefaultStyle,
		BufferDepth: DefaultBuffer,
	},
	"pxls-small": {
		Width:       1000,
		Height:      1000,
		Style:       DefaultStyle,
		BufferDepth: DefaultBuffer,
	},
	"test": {
		Width:       64,
		Height:      64,
		Style:       DefaultStyle,
		BufferDepth: DefaultBuffer,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	out := make([]string, 0, len(presets))
	for name := range presets {
		out = append(out, name)
	}
	return out
}
