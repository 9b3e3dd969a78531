package warp

import (
	"testing"

	"cardscan/pkg/geometry"

	"gocv.io/x/gocv"
)

func TestRectifyProducesCanonicalSize(t *testing.T) {
	src := gocv.NewMatWithSize(600, 800, gocv.MatTypeCV8UC3)
	defer src.Close()

	tests := []struct {
		name          string
		corners       []geometry.Point2D
		wantWidth     int
		wantHeight    int
		wantLandscape bool
	}{
		{
			name: "rotated portrait quad",
			corners: []geometry.Point2D{
				{X: 150, Y: 100}, {X: 450, Y: 120}, {X: 400, Y: 500}, {X: 100, Y: 480},
			},
			wantWidth:  CardWidth,
			wantHeight: CardHeight,
		},
		{
			name: "landscape quad",
			corners: []geometry.Point2D{
				{X: 100, Y: 100}, {X: 550, Y: 110}, {X: 540, Y: 420}, {X: 90, Y: 410},
			},
			wantWidth:     CardHeight,
			wantHeight:    CardWidth,
			wantLandscape: true,
		},
		{
			name: "unordered corners",
			corners: []geometry.Point2D{
				{X: 400, Y: 500}, {X: 150, Y: 100}, {X: 100, Y: 480}, {X: 450, Y: 120},
			},
			wantWidth:  CardWidth,
			wantHeight: CardHeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := Rectify(src, tt.corners)
			if err != nil {
				t.Fatalf("Rectify() error: %v", err)
			}
			defer card.Close()

			if card.Width != tt.wantWidth || card.Height != tt.wantHeight {
				t.Errorf("card size = %dx%d, want %dx%d",
					card.Width, card.Height, tt.wantWidth, tt.wantHeight)
			}
			if card.Landscape != tt.wantLandscape {
				t.Errorf("landscape = %v, want %v", card.Landscape, tt.wantLandscape)
			}
			if card.Image.Cols() != tt.wantWidth || card.Image.Rows() != tt.wantHeight {
				t.Errorf("image buffer = %dx%d, want %dx%d",
					card.Image.Cols(), card.Image.Rows(), tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestRectifyFailures(t *testing.T) {
	src := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8UC3)
	defer src.Close()

	if _, err := Rectify(src, []geometry.Point2D{{X: 1, Y: 1}, {X: 2, Y: 2}}); err == nil {
		t.Error("expected error for wrong corner count")
	}

	collinear := []geometry.Point2D{
		{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 20}, {X: 30, Y: 30},
	}
	if _, err := Rectify(src, collinear); err == nil {
		t.Error("expected error for collinear corners")
	}

	empty := gocv.NewMat()
	defer empty.Close()
	quad := []geometry.Point2D{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}
	if _, err := Rectify(empty, quad); err == nil {
		t.Error("expected error for empty source image")
	}
}
