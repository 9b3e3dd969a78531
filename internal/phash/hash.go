package phash

import (
	"image"
	"sort"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

const (
	// dctSize is the square grid the image is reduced to before the
	// frequency transform.
	dctSize = 32

	// hashSize is the side of the low-frequency coefficient block kept
	// from the transform. hashSize*hashSize must equal the fingerprint
	// bit width.
	hashSize = 8
)

// FromImage computes the perceptual fingerprint of an image.
//
// The image is converted to grayscale, downsampled to a small fixed grid,
// and passed through a 2-D discrete cosine transform. The lowest-frequency
// 8x8 coefficient block is kept; each coefficient is compared against the
// block's median (the DC term is excluded from the median so it cannot
// dominate it) and packed MSB-first in row-major order into 64 bits.
// The result is deterministic for bit-identical input.
func FromImage(img image.Image) Fingerprint {
	gray := imaging.Grayscale(img)
	small := imaging.Resize(gray, dctSize, dctSize, imaging.Lanczos)

	// Intensity grid in row-major order. After Grayscale, R == G == B.
	var grid [dctSize][dctSize]float64
	for y := 0; y < dctSize; y++ {
		for x := 0; x < dctSize; x++ {
			grid[y][x] = float64(small.Pix[small.PixOffset(x, y)])
		}
	}

	coefs := dct2D(&grid)

	// Median of the retained block, excluding the DC term.
	flat := make([]float64, 0, hashSize*hashSize-1)
	for u := 0; u < hashSize; u++ {
		for v := 0; v < hashSize; v++ {
			if u == 0 && v == 0 {
				continue
			}
			flat = append(flat, coefs[u][v])
		}
	}
	sort.Float64s(flat)
	median := stat.Quantile(0.5, stat.Empirical, flat, nil)

	var f uint64
	bit := 63
	for u := 0; u < hashSize; u++ {
		for v := 0; v < hashSize; v++ {
			if coefs[u][v] > median {
				f |= 1 << uint(bit)
			}
			bit--
		}
	}
	return Fingerprint(f)
}

// dct2D applies the discrete cosine transform along rows, then along
// columns, and returns the low-frequency hashSize x hashSize block.
func dct2D(grid *[dctSize][dctSize]float64) [hashSize][hashSize]float64 {
	dct := fourier.NewDCT(dctSize)

	var rows [dctSize][dctSize]float64
	buf := make([]float64, dctSize)
	for y := 0; y < dctSize; y++ {
		dct.Transform(buf, grid[y][:])
		copy(rows[y][:], buf)
	}

	// Only the first hashSize columns contribute to the retained block.
	var out [hashSize][hashSize]float64
	col := make([]float64, dctSize)
	for x := 0; x < hashSize; x++ {
		for y := 0; y < dctSize; y++ {
			col[y] = rows[y][x]
		}
		dct.Transform(buf, col)
		for y := 0; y < hashSize; y++ {
			out[y][x] = buf[y]
		}
	}
	return out
}
