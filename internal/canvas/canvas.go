package canvas

import (
	"fmt"
	"image"
	"image/color"
	"time"
)

// Cell holds the accumulated history of one canvas position. Every
// visualization style is answerable from these fields without a second pass
// over the log.
type Cell struct {
	// Index is the current palette index, or NoIndex when the cell shows
	// the background.
	Index    int
	LastTime time.Time
	LastKind ActionKind
	// Count is the total number of events ever applied to this cell.
	Count  int
	Virgin bool
	// FirstTime is when the first coloring action landed; zero while virgin.
	FirstTime time.Time
}

// Canvas owns the full grid of cells plus the optional background seed.
// It is mutated strictly sequentially; cells are never shared.
type Canvas struct {
	width  int
	height int
	// paletteSize bounds acceptable event indices; 0 disables the check.
	paletteSize int
	cells       []Cell
	background  []color.NRGBA
}

// New allocates a canvas with every cell in the virgin state.
func New(width, height, paletteSize int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas: invalid size %dx%d", width, height)
	}
	c := &Canvas{
		width:       width,
		height:      height,
		paletteSize: paletteSize,
		cells:       make([]Cell, width*height),
	}
	for i := range c.cells {
		c.cells[i].Index = NoIndex
		c.cells[i].Virgin = true
	}
	return c, nil
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Cell returns the cell at (x, y). The caller must not retain the pointer
// across Apply calls on other goroutines; replay is single-threaded.
func (c *Canvas) Cell(x, y int) *Cell {
	return &c.cells[y*c.width+x]
}

// Background returns the seeded background color at (x, y), or transparent
// black when no seed was supplied.
func (c *Canvas) Background(x, y int) color.NRGBA {
	if c.background == nil {
		return color.NRGBA{}
	}
	return c.background[y*c.width+x]
}

// Seed primes the canvas from a starting image before replay. Pixels whose
// color exactly matches a palette entry seed the cell's current index; all
// pixels become the background shown under virgin cells. Cells stay virgin
// and counts stay zero, so seeding is invisible to the history aggregates.
func (c *Canvas) Seed(img image.Image, match func(color.NRGBA) (int, bool)) error {
	b := img.Bounds()
	if b.Dx() != c.width || b.Dy() != c.height {
		return fmt.Errorf("%w: canvas %dx%d, image %dx%d",
			ErrSizeMismatch, c.width, c.height, b.Dx(), b.Dy())
	}
	c.background = make([]color.NRGBA, c.width*c.height)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			px := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			c.background[y*c.width+x] = px
			if match != nil {
				if idx, ok := match(px); ok {
					c.cells[y*c.width+x].Index = idx
				}
			}
		}
	}
	return nil
}

// SeedColor primes the canvas with a uniform background color.
func (c *Canvas) SeedColor(col color.NRGBA) {
	c.background = make([]color.NRGBA, c.width*c.height)
	for i := range c.background {
		c.background[i] = col
	}
}

// Apply folds one event into exactly one cell. Coloring kinds set the
// current index, clear virgin status and record the first placement time.
// Reverting kinds restore the carried index, or fall back to the background
// when the log entry has none. Out-of-bounds coordinates and out-of-range
// indices are data errors; the cell is left untouched.
func (c *Canvas) Apply(e Event) error {
	if e.X < 0 || e.X >= c.width || e.Y < 0 || e.Y >= c.height {
		return &DataError{
			Line:  e.Line,
			Field: "coordinates",
			Value: fmt.Sprintf("%d,%d", e.X, e.Y),
			Err:   ErrOutOfBounds,
		}
	}
	if e.HasIndex() && c.paletteSize > 0 && (e.Index < 0 || e.Index >= c.paletteSize) {
		return &DataError{
			Line:  e.Line,
			Field: "index",
			Value: fmt.Sprintf("%d", e.Index),
			Err:   ErrBadIndex,
		}
	}

	cell := &c.cells[e.Y*c.width+e.X]
	if e.Kind.Colors() {
		if e.HasIndex() {
			cell.Index = e.Index
		}
		if cell.Virgin {
			cell.Virgin = false
			cell.FirstTime = e.Time
		}
	} else {
		if e.HasIndex() {
			cell.Index = e.Index
		} else {
			cell.Index = NoIndex
		}
	}
	cell.LastTime = e.Time
	cell.LastKind = e.Kind
	cell.Count++
	return nil
}
