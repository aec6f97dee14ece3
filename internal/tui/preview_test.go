package tui

import (
	"image/color"
	"testing"
	"time"

	"github.com/san-kum/pixelapse/internal/render"
)

func TestRecorderDownsamples(t *testing.T) {
	rec := NewRecorder()
	f := render.NewFrame(160, 96)
	want := color.NRGBA{200, 100, 50, 255}
	for y := 0; y < 96; y++ {
		for x := 0; x < 160; x++ {
			f.Set(x, y, want)
		}
	}
	f.Time = time.Date(2022, 1, 9, 4, 0, 0, 0, time.UTC)

	if err := rec.Write(f); err != nil {
		t.Fatal(err)
	}
	if rec.Frames() != 1 {
		t.Fatalf("Frames() = %d", rec.Frames())
	}
	snap := rec.snaps[0]
	if len(snap.pix) != rec.cols*rec.rows {
		t.Fatalf("snapshot has %d pixels", len(snap.pix))
	}
	for i, px := range snap.pix {
		if px != want {
			t.Fatalf("pixel %d = %v", i, px)
		}
	}
	if !snap.time.Equal(f.Time) {
		t.Errorf("snapshot time = %v", snap.time)
	}
}

func TestRecorderShrinksForSmallCanvas(t *testing.T) {
	rec := NewRecorder()
	f := render.NewFrame(8, 5)
	if err := rec.Write(f); err != nil {
		t.Fatal(err)
	}
	if rec.cols != 8 {
		t.Errorf("cols = %d, want canvas width", rec.cols)
	}
	if rec.rows != 4 {
		t.Errorf("rows = %d, want even row count", rec.rows)
	}
}
