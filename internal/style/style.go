// Package style resolves per-cell canvas state into output colors. The
// resolver is a pure function: identical cell state, style and reference
// time always produce the same color.
package style

import (
	"fmt"
	"image/color"
	"time"

	"github.com/san-kum/pixelapse/internal/canvas"
	"github.com/san-kum/pixelapse/internal/palette"
)

// Style selects one of the visualization modes.
type Style int

const (
	Normal Style = iota
	Heat
	Virgin
	Activity
	Action
	Milliseconds
	Seconds
	Minutes
	Combined
	Age
)

var styleNames = []string{
	"normal", "heat", "virgin", "activity", "action",
	"milliseconds", "seconds", "minutes", "combined", "age",
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "unknown"
	}
	return styleNames[s]
}

// Parse maps a style name to its Style value.
func Parse(name string) (Style, error) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("style: unknown style %q", name)
}

// Styles lists the accepted style names, for help text.
func Styles() []string {
	out := make([]string, len(styleNames))
	copy(out, styleNames)
	return out
}

// Cells placed this many times or more saturate the heat ramp.
const heatSaturation = 64

const (
	msPerSecond = 1000
	msPerMinute = 60_000
	msPerHour   = 3_600_000
)

var (
	heatColor    = color.NRGBA{R: 205, G: 92, B: 92, A: 255}
	virginColor  = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	secondColor  = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	minuteColor  = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	hourColor    = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
	ageColor     = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
	actionColors = map[canvas.ActionKind]color.NRGBA{
		canvas.ActionUndo:         {R: 255, G: 0, B: 255, A: 255},
		canvas.ActionPlace:        {R: 0, G: 0, B: 255, A: 255},
		canvas.ActionOverwrite:    {R: 0, G: 255, B: 255, A: 255},
		canvas.ActionRollback:     {R: 0, G: 255, B: 0, A: 255},
		canvas.ActionRollbackUndo: {R: 255, G: 255, B: 0, A: 255},
		canvas.ActionNuke:         {R: 255, G: 0, B: 0, A: 255},
	}
)

var activityGradient = NewGradient(
	[]color.NRGBA{
		{R: 11, G: 21, B: 97, A: 255},
		{R: 32, G: 156, B: 194, A: 255},
		{R: 122, G: 222, B: 142, A: 255},
		{R: 245, G: 250, B: 212, A: 255},
		{R: 247, G: 151, B: 45, A: 255},
		{R: 211, G: 17, B: 34, A: 255},
		{R: 0, G: 0, B: 0, A: 255},
		{R: 131, G: 22, B: 161, A: 255},
		{R: 240, G: 101, B: 243, A: 255},
	},
	[]float64{0, 10, 50, 100, 500, 1000, 5000, 10000, 50000},
)

// Resolver turns cell aggregates into colors for one selected style.
type Resolver struct {
	Style   Style
	Palette palette.Palette
	// Epoch anchors the age ramp; normally the first event's timestamp.
	Epoch time.Time
}

// ColorFor resolves one cell. bg is the background color under the cell
// (from the seed image, or the configured fill) and ref is the frame's
// timestamp. It never mutates the cell.
func (r *Resolver) ColorFor(cell *canvas.Cell, bg color.NRGBA, ref time.Time) color.NRGBA {
	switch r.Style {
	case Normal:
		return r.normal(cell, bg)
	case Heat:
		if cell.Count == 0 {
			return bg
		}
		val := float64(cell.Count) / heatSaturation
		if val > 1 {
			val = 1
		}
		return color.NRGBA{
			R: uint8(float64(heatColor.R) * val),
			G: uint8(float64(heatColor.G) * val),
			B: uint8(float64(heatColor.B) * val),
			A: 255,
		}
	case Virgin:
		if cell.Virgin {
			return virginColor
		}
		return r.normal(cell, bg)
	case Activity:
		if cell.Count == 0 {
			return bg
		}
		return activityGradient.At(float64(cell.Count))
	case Action:
		if cell.Count == 0 {
			return bg
		}
		if c, ok := actionColors[cell.LastKind]; ok {
			return c
		}
		return bg
	case Milliseconds:
		return r.unitRamp(cell, bg, secondColor, msPerSecond)
	case Seconds:
		return r.unitRamp(cell, bg, minuteColor, msPerMinute)
	case Minutes:
		return r.unitRamp(cell, bg, hourColor, msPerHour)
	case Combined:
		if cell.Count == 0 {
			return bg
		}
		ms := cell.LastTime.UnixMilli() - 1
		return color.NRGBA{
			R: uint8(float64(ms%msPerSecond) / msPerSecond * 255),
			G: uint8(float64(ms%msPerMinute) / msPerMinute * 255),
			B: uint8(float64(ms%msPerHour) / msPerHour * 255),
			A: 255,
		}
	case Age:
		if cell.Virgin {
			return bg
		}
		span := ref.Sub(r.Epoch)
		val := 1.0
		if span > 0 {
			val = float64(cell.FirstTime.Sub(r.Epoch)) / float64(span)
		}
		return Ramp(ageColor, val)
	}
	return bg
}

// normal is the plain palette lookup shared by Normal and Virgin.
// An index the palette cannot answer resolves to the background.
func (r *Resolver) normal(cell *canvas.Cell, bg color.NRGBA) color.NRGBA {
	if cell.Index == canvas.NoIndex {
		return bg
	}
	if c, ok := r.Palette.Color(cell.Index); ok {
		return c
	}
	return bg
}

func (r *Resolver) unitRamp(cell *canvas.Cell, bg, base color.NRGBA, unit int64) color.NRGBA {
	if cell.Count == 0 {
		return bg
	}
	val := float64((cell.LastTime.UnixMilli()-1)%unit) / float64(unit)
	return Ramp(base, val)
}
