package geometry

import (
	"image"
	"testing"
)

func TestFromCorners(t *testing.T) {
	tests := []struct {
		name string
		a, b PointInt
		want RectInt
	}{
		{"top-left to bottom-right", PointInt{10, 20}, PointInt{110, 70}, RectInt{10, 20, 100, 50}},
		{"bottom-right to top-left", PointInt{110, 70}, PointInt{10, 20}, RectInt{10, 20, 100, 50}},
		{"same point", PointInt{5, 5}, PointInt{5, 5}, RectInt{5, 5, 0, 0}},
		{"negative coordinates", PointInt{-30, -10}, PointInt{-10, 10}, RectInt{-30, -10, 20, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromCorners(tt.a, tt.b); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	a := NewRectInt(0, 0, 100, 100)

	if got := a.Intersect(NewRectInt(50, 50, 100, 100)); got != NewRectInt(50, 50, 50, 50) {
		t.Errorf("overlap: got %+v", got)
	}
	if got := a.Intersect(NewRectInt(200, 200, 10, 10)); !got.Empty() {
		t.Errorf("disjoint rects should intersect empty, got %+v", got)
	}
	if !a.Intersects(NewRectInt(99, 99, 10, 10)) {
		t.Error("touching overlap should intersect")
	}
	if a.Intersects(NewRectInt(100, 0, 10, 10)) {
		t.Error("edge-adjacent rects do not overlap")
	}
}

func TestUnion(t *testing.T) {
	a := NewRectInt(0, 0, 10, 10)
	b := NewRectInt(20, 20, 10, 10)
	if got := a.Union(b); got != NewRectInt(0, 0, 30, 30) {
		t.Errorf("got %+v", got)
	}
	if got := (RectInt{}).Union(b); got != b {
		t.Errorf("union with empty should return the other rect, got %+v", got)
	}
}

func TestImageRectConversion(t *testing.T) {
	r := NewRectInt(10, 20, 30, 40)
	ir := r.ToImageRect()
	if ir != image.Rect(10, 20, 40, 60) {
		t.Errorf("ToImageRect: got %v", ir)
	}
	if back := FromImageRect(ir); back != r {
		t.Errorf("round trip: got %+v", back)
	}
}
