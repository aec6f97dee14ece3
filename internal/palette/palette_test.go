package palette

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default()
	if len(p) != 32 {
		t.Fatalf("default palette has %d colors, want 32", len(p))
	}
	if c, ok := p.Color(12); !ok || c != (color.NRGBA{253, 232, 23, 255}) {
		t.Errorf("index 12 = %v, want yellow", c)
	}
	if _, ok := p.Color(32); ok {
		t.Error("index 32 should be out of range")
	}
	if _, ok := p.Color(-1); ok {
		t.Error("index -1 should be out of range")
	}
}

func TestIndex(t *testing.T) {
	p := Default()
	if i, ok := p.Index(color.NRGBA{255, 255, 255, 255}); !ok || i != 5 {
		t.Errorf("Index(white) = %d, %v", i, ok)
	}
	if _, ok := p.Index(color.NRGBA{1, 2, 3, 255}); ok {
		t.Error("off-palette color should not resolve")
	}
}

func TestParseJSON(t *testing.T) {
	in := `{"palette": [
		{"name": "Black", "value": "000000"},
		{"name": "Red", "value": "ff0000"}
	]}`
	p, err := ParseJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if len(p) != 2 || p[1] != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("palette = %v", p)
	}

	if _, err := ParseJSON(strings.NewReader(`{"colors": []}`)); err == nil {
		t.Error("missing palette key should fail")
	}
	if _, err := ParseJSON(strings.NewReader(`{"palette": [{"value": "zzzzzz"}]}`)); err == nil {
		t.Error("bad hex value should fail")
	}
}

func TestParseGPL(t *testing.T) {
	in := "GIMP Palette\nName: test\nColumns: 2\n#\n0 0 0 Black\n255 128  64 Sunset\n"
	p, err := ParseGPL(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseGPL: %v", err)
	}
	if len(p) != 2 || p[1] != (color.NRGBA{255, 128, 64, 255}) {
		t.Errorf("palette = %v", p)
	}

	if _, err := ParseGPL(strings.NewReader("nope\n")); err == nil {
		t.Error("missing magic should fail")
	}
	if _, err := ParseGPL(strings.NewReader("GIMP Palette\n#\n300 0 0 x\n")); err == nil {
		t.Error("component over 255 should fail")
	}
}

func TestParseACO(t *testing.T) {
	var buf bytes.Buffer
	words := []uint16{
		1, 2, // version 1, two colors
		0, 0xffff, 0, 0, 0, // red, full-scale 16 bit
		0, 0x8080, 0x8080, 0x8080, 0, // mid grey
	}
	for _, w := range words {
		binary.Write(&buf, binary.BigEndian, w)
	}
	p, err := ParseACO(&buf)
	if err != nil {
		t.Fatalf("ParseACO: %v", err)
	}
	if len(p) != 2 {
		t.Fatalf("got %d colors", len(p))
	}
	if p[0] != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("color 0 = %v", p[0])
	}
	if p[1] != (color.NRGBA{128, 128, 128, 255}) {
		t.Errorf("color 1 = %v", p[1])
	}

	var v2 bytes.Buffer
	binary.Write(&v2, binary.BigEndian, uint16(2))
	binary.Write(&v2, binary.BigEndian, uint16(0))
	if _, err := ParseACO(&v2); err == nil {
		t.Error("version 2 should be rejected")
	}
}

func TestParseCSV(t *testing.T) {
	in := "Name,Hex,R,G,B\nBlack,#000000,0,0,0\nAzure,#24b5fe,36,181,254\n\n"
	p, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(p) != 2 || p[1] != (color.NRGBA{36, 181, 254, 255}) {
		t.Errorf("palette = %v", p)
	}

	if _, err := ParseCSV(strings.NewReader("header\nshort,row\n")); err == nil {
		t.Error("short row should fail")
	}
}

func TestParseTXT(t *testing.T) {
	in := "; paint.NET palette\nFF000000\n80FF0000 red at half alpha\n\n"
	p, err := ParseTXT(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseTXT: %v", err)
	}
	if len(p) != 2 {
		t.Fatalf("got %d colors", len(p))
	}
	if p[0] != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("color 0 = %v", p[0])
	}
	if p[1] != (color.NRGBA{255, 0, 0, 128}) {
		t.Errorf("color 1 = %v", p[1])
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pal.gpl")
	if err := os.WriteFile(path, []byte("GIMP Palette\n#\n10 20 30 x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p) != 1 || p[0] != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("palette = %v", p)
	}

	bad := filepath.Join(dir, "pal.xyz")
	os.WriteFile(bad, []byte("x"), 0o644)
	if _, err := Load(bad); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
