package geometry

import (
	"math"
	"testing"
)

func TestConvexHullDropsInteriorPoints(t *testing.T) {
	points := []Point2D{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 4, Y: 4},
		{X: 0, Y: 4},
		{X: 2, Y: 2}, // interior
		{X: 1, Y: 3}, // interior
	}

	hull := ConvexHull(points)
	if len(hull) != 4 {
		t.Fatalf("expected 4 hull points, got %d: %v", len(hull), hull)
	}

	for _, h := range hull {
		if h.X != 0 && h.X != 4 || h.Y != 0 && h.Y != 4 {
			t.Errorf("unexpected hull point %v", h)
		}
	}
}

func TestPerimeter(t *testing.T) {
	square := []Point2D{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}

	tests := []struct {
		name   string
		points []Point2D
		closed bool
		want   float64
	}{
		{name: "closed square", points: square, closed: true, want: 4},
		{name: "open square", points: square, closed: false, want: 3},
		{name: "single point", points: square[:1], closed: true, want: 0},
		{name: "empty", points: nil, closed: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Perimeter(tt.points, tt.closed)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Perimeter() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestBoundingBox(t *testing.T) {
	points := []Point2D{
		{X: 3, Y: 7},
		{X: -1, Y: 2},
		{X: 5, Y: 4},
	}

	box := BoundingBox(points)
	if box.X != -1 || box.Y != 2 || box.Width != 6 || box.Height != 5 {
		t.Errorf("BoundingBox() = %+v", box)
	}

	if !box.Contains(Point2D{X: 3, Y: 4}) {
		t.Error("expected box to contain interior point")
	}
}

func TestCentroid(t *testing.T) {
	points := []Point2D{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 4, Y: 4},
		{X: 0, Y: 4},
	}

	c := Centroid(points)
	if c.X != 2 || c.Y != 2 {
		t.Errorf("Centroid() = %+v, want (2,2)", c)
	}
}
