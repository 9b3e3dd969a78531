package warp

import (
	"cardscan/pkg/geometry"
)

// OrderCorners canonicalizes 4 unordered corner points into TL, TR, BR, BL
// winding order. Top-left has the smallest x+y, bottom-right the largest;
// top-right has the largest x-y, bottom-left the smallest. Applying it to
// an already-ordered set returns the same order.
//
// There is no explicit tie handling: a quadrilateral rotated to a
// near-perfect diamond can have two corners with equal x+y, in which case
// the first encountered wins. That is deterministic but can mis-order
// near-degenerate input.
func OrderCorners(pts []geometry.Point2D) []geometry.Point2D {
	if len(pts) != 4 {
		return nil
	}

	tl, tr, br, bl := 0, 0, 0, 0
	for i := 1; i < 4; i++ {
		sum := pts[i].X + pts[i].Y
		diff := pts[i].X - pts[i].Y
		if sum < pts[tl].X+pts[tl].Y {
			tl = i
		}
		if sum > pts[br].X+pts[br].Y {
			br = i
		}
		if diff > pts[tr].X-pts[tr].Y {
			tr = i
		}
		if diff < pts[bl].X-pts[bl].Y {
			bl = i
		}
	}

	return []geometry.Point2D{pts[tl], pts[tr], pts[br], pts[bl]}
}
