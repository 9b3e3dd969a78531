// Package warp rectifies detected card quadrilaterals into a fixed-size
// canonical view suitable for fingerprinting.
package warp

import (
	"fmt"
	"image"
	"math"

	"cardscan/pkg/geometry"

	"gocv.io/x/gocv"
)

// Standard dimensions of the rectified card, in pixels. The physical card
// measures 6.3cm x 8.8cm.
const (
	CardWidth  = 250
	CardAspect = 6.3 / 8.8
)

// CardHeight is derived from CardWidth and the physical aspect ratio.
var CardHeight = int(math.Round(CardWidth / CardAspect))

// Card is a rectified card image at the canonical size. The dimensions are
// constant across all candidates regardless of source scale or rotation;
// only the orientation flag varies.
type Card struct {
	Image     gocv.Mat
	Width     int
	Height    int
	Landscape bool
}

// Close releases the underlying image buffer.
func (c *Card) Close() {
	c.Image.Close()
}

// TargetSize decides the canonical output dimensions for a set of ordered
// corners. When the averaged top/bottom edges exceed the averaged left/right
// edges the physical card is lying on its side in-frame, so the target
// dimensions swap to keep the canonical rectangle's axes matched to the
// card's short and long sides.
func TargetSize(ordered []geometry.Point2D) (width, height int, landscape bool) {
	tl, tr, br, bl := ordered[0], ordered[1], ordered[2], ordered[3]

	avgWidth := (tl.Distance(tr) + bl.Distance(br)) / 2
	avgHeight := (tl.Distance(bl) + tr.Distance(br)) / 2

	if avgWidth > avgHeight {
		return CardHeight, CardWidth, true
	}
	return CardWidth, CardHeight, false
}

// Rectify warps the quadrilateral described by corners (original-image
// coordinates, any order) into a canonical Card. It returns an error for
// anything other than exactly 4 corners and for degenerate quadrilaterals
// whose perspective transform is singular; the caller should drop the
// candidate rather than abort the batch.
func Rectify(src gocv.Mat, corners []geometry.Point2D) (*Card, error) {
	if src.Empty() {
		return nil, fmt.Errorf("empty source image")
	}
	if len(corners) != 4 {
		return nil, fmt.Errorf("need exactly 4 corners, got %d", len(corners))
	}

	ordered := OrderCorners(corners)
	width, height, landscape := TargetSize(ordered)

	dst := [4]geometry.Point2D{
		{X: 0, Y: 0},
		{X: float64(width - 1), Y: 0},
		{X: float64(width - 1), Y: float64(height - 1)},
		{X: 0, Y: float64(height - 1)},
	}

	hom, err := solveHomography([4]geometry.Point2D(ordered), dst)
	if err != nil {
		return nil, err
	}

	m := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	defer m.Close()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m.SetDoubleAt(row, col, hom[row][col])
		}
	}

	out := gocv.NewMat()
	gocv.WarpPerspective(src, &out, m, image.Pt(width, height))

	return &Card{
		Image:     out,
		Width:     width,
		Height:    height,
		Landscape: landscape,
	}, nil
}
