package detect

import (
	"image"
	"math"

	"cardscan/pkg/geometry"

	"gocv.io/x/gocv"
)

// eccentricity fits an ellipse to the contour and returns
// sqrt(1 - (minor/major)^2). Contours with fewer than 5 points cannot
// support an ellipse fit and are defined to have eccentricity 0, which
// automatically fails the extraction filter; this is a degenerate-case
// policy, not an error.
func eccentricity(cnt gocv.PointVector) float64 {
	if cnt.Size() < 5 {
		return 0
	}

	ellipse := gocv.FitEllipse(cnt)
	minor := float64(ellipse.Width)
	major := float64(ellipse.Height)
	if minor > major {
		minor, major = major, minor
	}
	if major == 0 {
		return 1
	}

	ratio := minor / major
	return math.Sqrt(1 - ratio*ratio)
}

// convexityRatio returns the convex hull perimeter divided by the contour
// perimeter. Convex, non-jagged shapes score near 1.0; concavities inflate
// the contour perimeter and drive the ratio down. Fewer than 3 points
// yield 0.
func convexityRatio(points []geometry.Point2D) float64 {
	if len(points) < 3 {
		return 0
	}

	perimeter := geometry.Perimeter(points, true)
	if perimeter == 0 {
		return 0
	}

	hull := geometry.ConvexHull(points)
	return geometry.Perimeter(hull, true) / perimeter
}

// ImageToMat converts a decoded image.Image to a BGR Mat for the
// detection pipeline.
func ImageToMat(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.NewMat(), ErrBadImage
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.NewMat(), ErrBadImage
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}

	return mat, nil
}
