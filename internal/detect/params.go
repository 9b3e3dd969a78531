package detect

// Params configures the contour candidate extractor. All thresholds apply
// to the downscaled processing frame, not the original image.
type Params struct {
	// Contour area bounds as fractions of the processing frame's area.
	MinAreaRatio float64 `yaml:"min_area_ratio"`
	MaxAreaRatio float64 `yaml:"max_area_ratio"`

	// PolyEpsilon scales the Douglas-Peucker tolerance by the contour
	// perimeter. Typical range 0.02-0.03.
	PolyEpsilon float64 `yaml:"poly_epsilon"`

	// AspectTolerance is the allowed relative deviation of the bounding
	// box aspect ratio from the card's portrait ratio or its landscape
	// reciprocal.
	AspectTolerance float64 `yaml:"aspect_tolerance"`

	// Ellipse-fit eccentricity bounds. Rectangles are fairly eccentric;
	// near-circular contours score close to 0 and slivers approach 1.
	MinEccentricity float64 `yaml:"min_eccentricity"`
	MaxEccentricity float64 `yaml:"max_eccentricity"`

	// MinConvexity is the smallest accepted hull-perimeter to
	// contour-perimeter ratio. Near 1.0 means convex and non-jagged.
	MinConvexity float64 `yaml:"min_convexity"`

	// Canny hysteresis thresholds. Low values catch weak card edges.
	CannyLow  float32 `yaml:"canny_low"`
	CannyHigh float32 `yaml:"canny_high"`

	// BlurKernel is the side of the Gaussian kernel applied before edge
	// detection. Must be odd.
	BlurKernel int `yaml:"blur_kernel"`

	// CloseKernel and CloseIterations control the morphological closing
	// that bridges gaps left by the card's internal artwork edges so the
	// outer boundary forms one closed contour. Kernel must be odd.
	CloseKernel     int `yaml:"close_kernel"`
	CloseIterations int `yaml:"close_iterations"`
}

// DefaultParams returns extraction parameters tuned on binder and
// single-card photos.
func DefaultParams() Params {
	return Params{
		MinAreaRatio:    0.008,
		MaxAreaRatio:    0.6,
		PolyEpsilon:     0.03,
		AspectTolerance: 0.18,
		MinEccentricity: 0.65,
		MaxEccentricity: 0.99,
		MinConvexity:    0.92,
		CannyLow:        30,
		CannyHigh:       100,
		BlurKernel:      5,
		CloseKernel:     11,
		CloseIterations: 2,
	}
}

// WithAreaRange returns a copy of params with custom area bounds.
func (p Params) WithAreaRange(minRatio, maxRatio float64) Params {
	p.MinAreaRatio = minRatio
	p.MaxAreaRatio = maxRatio
	return p
}

// WithAspectTolerance returns a copy of params with a custom aspect
// ratio tolerance.
func (p Params) WithAspectTolerance(tol float64) Params {
	p.AspectTolerance = tol
	return p
}
