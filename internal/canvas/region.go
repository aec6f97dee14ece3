package canvas

import "fmt"

// Region is an inclusive rectangle on the canvas. Corners are normalized on
// construction so X1 <= X2 and Y1 <= Y2 always hold.
type Region struct {
	X1, Y1, X2, Y2 int
}

// NewRegion builds a region from two corners, swapping them if needed.
func NewRegion(x1, y1, x2, y2 int) Region {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Region{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// RegionFromSlice accepts up to four coordinates; missing values extend the
// region to the canvas edge, mirroring the CLI's partial --region argument.
func RegionFromSlice(vals []int, width, height int) (Region, error) {
	r := Region{X1: 0, Y1: 0, X2: width - 1, Y2: height - 1}
	switch len(vals) {
	case 0:
	case 1:
		r = NewRegion(vals[0], 0, width-1, height-1)
	case 2:
		r = NewRegion(vals[0], vals[1], width-1, height-1)
	case 3:
		r = NewRegion(vals[0], vals[1], vals[2], height-1)
	case 4:
		r = NewRegion(vals[0], vals[1], vals[2], vals[3])
	default:
		return Region{}, fmt.Errorf("region takes at most 4 values, got %d", len(vals))
	}
	return r, nil
}

// Contains reports whether (x, y) lies inside the region, bounds inclusive.
func (r Region) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Width returns the number of columns covered.
func (r Region) Width() int { return r.X2 - r.X1 + 1 }

// Height returns the number of rows covered.
func (r Region) Height() int { return r.Y2 - r.Y1 + 1 }

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}
