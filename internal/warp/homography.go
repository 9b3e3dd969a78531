package warp

import (
	"fmt"
	"math"

	"cardscan/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// Homography is a 3x3 projective transform in row-major order.
type Homography [3][3]float64

// Apply maps a point through the transform.
func (h Homography) Apply(p geometry.Point2D) geometry.Point2D {
	w := h[2][0]*p.X + h[2][1]*p.Y + h[2][2]
	if math.Abs(w) < 1e-12 {
		return geometry.Point2D{}
	}
	return geometry.Point2D{
		X: (h[0][0]*p.X + h[0][1]*p.Y + h[0][2]) / w,
		Y: (h[1][0]*p.X + h[1][1]*p.Y + h[1][2]) / w,
	}
}

// solveHomography computes the projective transform mapping src[i] to
// dst[i] for four point correspondences. With h33 fixed to 1 the eight
// remaining coefficients satisfy a linear system:
//
//	u = (h11*x + h12*y + h13) / (h31*x + h32*y + 1)
//	v = (h21*x + h22*y + h23) / (h31*x + h32*y + 1)
//
// Degenerate input (collinear or coincident corners) makes the system
// singular and is returned as an error.
func solveHomography(src, dst [4]geometry.Point2D) (Homography, error) {
	A := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		u, v := dst[i].X, dst[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		A.Set(i*2, 6, -u*x)
		A.Set(i*2, 7, -u*y)
		b.SetVec(i*2, u)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		A.Set(i*2+1, 6, -v*x)
		A.Set(i*2+1, 7, -v*y)
		b.SetVec(i*2+1, v)
	}

	var h mat.VecDense
	if err := h.SolveVec(A, b); err != nil {
		return Homography{}, fmt.Errorf("singular perspective transform: %w", err)
	}

	return Homography{
		{h.AtVec(0), h.AtVec(1), h.AtVec(2)},
		{h.AtVec(3), h.AtVec(4), h.AtVec(5)},
		{h.AtVec(6), h.AtVec(7), 1},
	}, nil
}
