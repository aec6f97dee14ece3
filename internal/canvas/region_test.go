package canvas

import "testing"

func TestNewRegion_Normalizes(t *testing.T) {
	r := NewRegion(10, 20, 5, 2)
	if r.X1 != 5 || r.Y1 != 2 || r.X2 != 10 || r.Y2 != 20 {
		t.Errorf("corners not normalized: %+v", r)
	}
}

func TestRegionContains(t *testing.T) {
	r := NewRegion(1, 1, 3, 3)
	tests := []struct {
		x, y int
		want bool
	}{
		{1, 1, true},
		{3, 3, true}, // bounds are inclusive
		{2, 2, true},
		{0, 1, false},
		{4, 3, false},
		{1, 4, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRegion_SingleCell(t *testing.T) {
	r := NewRegion(5, 5, 5, 5)
	if r.Width() != 1 || r.Height() != 1 {
		t.Errorf("point region should cover one cell, got %dx%d", r.Width(), r.Height())
	}
	if !r.Contains(5, 5) || r.Contains(5, 6) {
		t.Error("point region should contain exactly its own cell")
	}
}

func TestRegionFromSlice(t *testing.T) {
	tests := []struct {
		vals []int
		want Region
	}{
		{nil, Region{0, 0, 9, 7}},
		{[]int{3}, Region{3, 0, 9, 7}},
		{[]int{3, 2}, Region{3, 2, 9, 7}},
		{[]int{3, 2, 6}, Region{3, 2, 6, 7}},
		{[]int{3, 2, 6, 5}, Region{3, 2, 6, 5}},
	}
	for _, tt := range tests {
		got, err := RegionFromSlice(tt.vals, 10, 8)
		if err != nil {
			t.Fatalf("RegionFromSlice(%v): %v", tt.vals, err)
		}
		if got != tt.want {
			t.Errorf("RegionFromSlice(%v) = %+v, want %+v", tt.vals, got, tt.want)
		}
	}
	if _, err := RegionFromSlice([]int{1, 2, 3, 4, 5}, 10, 8); err == nil {
		t.Error("expected error for 5 values")
	}
}
