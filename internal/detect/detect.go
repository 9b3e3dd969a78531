// Package detect locates quadrilateral card silhouettes in raster images.
package detect

import (
	"errors"
	"image"

	"cardscan/pkg/geometry"

	"gocv.io/x/gocv"
)

// ErrBadImage is returned when the input frame is missing or empty. It is
// an input error, never silently treated as zero detections.
var ErrBadImage = errors.New("invalid input image")

// cardAspectPortrait is the physical card ratio (6.3cm wide, 8.8cm tall).
const cardAspectPortrait = 6.3 / 8.8

// Candidate is a possible card silhouette: exactly four corner points in
// original-image coordinates plus the metrics the filters derived for it.
type Candidate struct {
	Corners [4]geometry.Point2D

	// Metrics measured on the processing frame.
	Area         float64
	BoxAspect    float64
	Eccentricity float64
	Convexity    float64
}

// FindCards locates card-shaped quadrilaterals in a BGR frame.
//
// The frame is downscaled so its height equals processingHeight (aspect
// preserved; pass 0 to process at native size), edge-detected, and closed
// morphologically so each card's outer boundary forms a single external
// contour. Contours survive only if they pass, in order: the area bounds,
// a 4-vertex polygon approximation, the bounding-box aspect check, the
// ellipse-fit eccentricity range, and the convexity ratio. Surviving
// corners are rescaled into original-image coordinates.
//
// The candidates are unordered and not deduplicated; overlap resolution is
// the caller's concern. Zero candidates is a valid result.
func FindCards(img gocv.Mat, processingHeight int, p Params) ([]Candidate, error) {
	if img.Empty() {
		return nil, ErrBadImage
	}

	if processingHeight <= 0 {
		processingHeight = img.Rows()
	}
	scale := float64(processingHeight) / float64(img.Rows())

	var frame gocv.Mat
	if processingHeight == img.Rows() {
		frame = img.Clone()
	} else {
		frame = gocv.NewMat()
		width := int(float64(img.Cols()) * scale)
		gocv.Resize(img, &frame, image.Pt(width, processingHeight), 0, 0, gocv.InterpolationArea)
	}
	defer frame.Close()

	// Gray → light blur → edges.
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(p.BlurKernel, p.BlurKernel), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, p.CannyLow, p.CannyHigh)

	// Close gaps from internal card artwork so the outer boundary
	// becomes one contour.
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(p.CloseKernel, p.CloseKernel))
	defer kernel.Close()
	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyExWithParams(edges, &closed, gocv.MorphClose, kernel, p.CloseIterations, gocv.BorderConstant)

	// Outer contours only; holes and inner artwork edges are ignored.
	contours := gocv.FindContours(closed, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	frameArea := float64(frame.Rows() * frame.Cols())
	var candidates []Candidate

	for i := 0; i < contours.Size(); i++ {
		cnt := contours.At(i)

		area := gocv.ContourArea(cnt)
		if area < p.MinAreaRatio*frameArea || area > p.MaxAreaRatio*frameArea {
			continue
		}

		peri := gocv.ArcLength(cnt, true)
		approx := gocv.ApproxPolyDP(cnt, p.PolyEpsilon*peri, true)
		if approx.Size() != 4 {
			approx.Close()
			continue
		}

		box := gocv.BoundingRect(approx)
		if box.Dy() == 0 {
			approx.Close()
			continue
		}
		boxAspect := float64(box.Dx()) / float64(box.Dy())
		if !aspectOK(boxAspect, p.AspectTolerance) {
			approx.Close()
			continue
		}

		ecc := eccentricity(cnt)
		if ecc <= p.MinEccentricity || ecc >= p.MaxEccentricity {
			approx.Close()
			continue
		}

		conv := convexityRatio(contourPoints(cnt))
		if conv < p.MinConvexity {
			approx.Close()
			continue
		}

		var corners [4]geometry.Point2D
		for j := 0; j < 4; j++ {
			pt := approx.At(j)
			corners[j] = geometry.Point2D{
				X: float64(pt.X) / scale,
				Y: float64(pt.Y) / scale,
			}
		}
		approx.Close()

		candidates = append(candidates, Candidate{
			Corners:      corners,
			Area:         area,
			BoxAspect:    boxAspect,
			Eccentricity: ecc,
			Convexity:    conv,
		})
	}

	return candidates, nil
}

// aspectOK reports whether a bounding-box ratio is within tolerance of the
// card's portrait ratio or its landscape reciprocal.
func aspectOK(ratio, tol float64) bool {
	portrait := cardAspectPortrait
	landscape := 1 / cardAspectPortrait

	if ratio > portrait*(1-tol) && ratio < portrait*(1+tol) {
		return true
	}
	return ratio > landscape*(1-tol) && ratio < landscape*(1+tol)
}

// contourPoints copies a contour into geometry points.
func contourPoints(cnt gocv.PointVector) []geometry.Point2D {
	pts := cnt.ToPoints()
	out := make([]geometry.Point2D, len(pts))
	for i, pt := range pts {
		out[i] = geometry.Point2D{X: float64(pt.X), Y: float64(pt.Y)}
	}
	return out
}
