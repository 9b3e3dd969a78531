package warp

import (
	"math"
	"testing"

	"cardscan/pkg/geometry"
)

func TestSolveHomographyMapsCorners(t *testing.T) {
	src := [4]geometry.Point2D{
		{X: 100, Y: 50},
		{X: 400, Y: 80},
		{X: 380, Y: 450},
		{X: 80, Y: 420},
	}
	dst := [4]geometry.Point2D{
		{X: 0, Y: 0},
		{X: 249, Y: 0},
		{X: 249, Y: 348},
		{X: 0, Y: 348},
	}

	h, err := solveHomography(src, dst)
	if err != nil {
		t.Fatalf("solveHomography() error: %v", err)
	}

	for i := range src {
		got := h.Apply(src[i])
		if math.Abs(got.X-dst[i].X) > 1e-6 || math.Abs(got.Y-dst[i].Y) > 1e-6 {
			t.Errorf("corner %d maps to %v, want %v", i, got, dst[i])
		}
	}
}

func TestSolveHomographyIdentity(t *testing.T) {
	square := [4]geometry.Point2D{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}

	h, err := solveHomography(square, square)
	if err != nil {
		t.Fatalf("solveHomography() error: %v", err)
	}

	// An interior point must be unmoved too.
	p := geometry.Point2D{X: 3, Y: 7}
	got := h.Apply(p)
	if math.Abs(got.X-p.X) > 1e-6 || math.Abs(got.Y-p.Y) > 1e-6 {
		t.Errorf("interior point maps to %v, want %v", got, p)
	}
}

func TestSolveHomographyDegenerate(t *testing.T) {
	// Collinear corners cannot define a projective transform.
	src := [4]geometry.Point2D{
		{X: 0, Y: 0},
		{X: 1, Y: 1},
		{X: 2, Y: 2},
		{X: 3, Y: 3},
	}
	dst := [4]geometry.Point2D{
		{X: 0, Y: 0},
		{X: 249, Y: 0},
		{X: 249, Y: 348},
		{X: 0, Y: 348},
	}

	if _, err := solveHomography(src, dst); err == nil {
		t.Fatal("expected error for collinear corners")
	}
}
