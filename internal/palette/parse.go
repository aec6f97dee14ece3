package palette

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrUnsupported indicates a palette file type with no parser.
var ErrUnsupported = errors.New("palette: unsupported file type")

// Load reads a palette file, dispatching on the file extension.
// Supported: .json (pxls export), .gpl (GIMP), .aco (Adobe, version 1),
// .csv, .txt (paint.NET).
func Load(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var p Palette
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		p, err = ParseJSON(f)
	case ".gpl":
		p, err = ParseGPL(f)
	case ".aco":
		p, err = ParseACO(f)
	case ".csv":
		p, err = ParseCSV(f)
	case ".txt":
		p, err = ParseTXT(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// ParseJSON reads a pxls palette export: {"palette": [{"name": ..., "value": "RRGGBB"}]}.
func ParseJSON(r io.Reader) (Palette, error) {
	var doc struct {
		Palette []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"palette"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Palette == nil {
		return nil, errors.New(`missing "palette" key`)
	}
	out := make(Palette, 0, len(doc.Palette))
	for _, entry := range doc.Palette {
		rgb, err := hex.DecodeString(entry.Value)
		if err != nil || len(rgb) != 3 {
			return nil, fmt.Errorf("bad color value %q", entry.Value)
		}
		out = append(out, color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
	}
	return out, nil
}

// ParseGPL reads a GIMP palette: a "GIMP Palette" magic line, header lines
// up to a lone "#", then "R G B name" entries.
func ParseGPL(r io.Reader) (Palette, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() || sc.Text() != "GIMP Palette" {
		return nil, errors.New("not a GIMP palette")
	}
	for sc.Scan() {
		if sc.Text() == "#" {
			break
		}
	}
	var out Palette
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			return nil, fmt.Errorf("short entry %q", sc.Text())
		}
		var vals [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(fields[i], 10, 8)
			if err != nil {
				return nil, err
			}
			vals[i] = uint8(v)
		}
		out = append(out, color.NRGBA{R: vals[0], G: vals[1], B: vals[2], A: 255})
	}
	return out, sc.Err()
}

// ParseACO reads an Adobe color swatch, version 1, RGB color space only.
func ParseACO(r io.Reader) (Palette, error) {
	read16 := func() (uint16, error) {
		var v uint16
		err := binary.Read(r, binary.BigEndian, &v)
		return v, err
	}
	version, err := read16()
	if err != nil {
		return nil, err
	}
	if version != 1 {
		return nil, fmt.Errorf("unsupported aco version %d", version)
	}
	count, err := read16()
	if err != nil {
		return nil, err
	}
	out := make(Palette, 0, count)
	for i := 0; i < int(count); i++ {
		var words [5]uint16
		for j := range words {
			if words[j], err = read16(); err != nil {
				return nil, err
			}
		}
		if words[0] != 0 {
			return nil, fmt.Errorf("unsupported color space %d", words[0])
		}
		out = append(out, color.NRGBA{
			R: uint8(words[1] / 257),
			G: uint8(words[2] / 257),
			B: uint8(words[3] / 257),
			A: 255,
		})
	}
	return out, nil
}

// ParseCSV reads "Name,#hexadecimal,R,G,B" rows, skipping the header line.
func ParseCSV(r io.Reader) (Palette, error) {
	sc := bufio.NewScanner(r)
	sc.Scan() // header
	var out Palette
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 5 {
			return nil, fmt.Errorf("short row %q", line)
		}
		var vals [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(strings.TrimSpace(fields[i+2]), 10, 8)
			if err != nil {
				return nil, err
			}
			vals[i] = uint8(v)
		}
		out = append(out, color.NRGBA{R: vals[0], G: vals[1], B: vals[2], A: 255})
	}
	return out, sc.Err()
}

// ParseTXT reads a paint.NET palette: one AARRGGBB hex value per line,
// with ";" starting a comment.
func ParseTXT(r io.Reader) (Palette, error) {
	sc := bufio.NewScanner(r)
	var out Palette
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexAny(line, "; \t"); i >= 0 {
			line = line[:i]
		}
		if line == "" {
			continue
		}
		vals, err := hex.DecodeString(line)
		if err != nil || len(vals) != 4 {
			return nil, fmt.Errorf("bad color value %q", line)
		}
		out = append(out, color.NRGBA{R: vals[1], G: vals[2], B: vals[3], A: vals[0]})
	}
	return out, sc.Err()
}
