// Package match ranks catalog entries against a query fingerprint.
package match

import (
	"cardscan/internal/catalog"
	"cardscan/internal/phash"
)

// Metric names which distance decided a match.
type Metric string

const (
	// MetricPrimary means the Hamming distance alone identified the entry.
	MetricPrimary Metric = "primary"

	// MetricTieBreak means several entries tied on Hamming distance and
	// the hex-digit secondary distance picked the winner.
	MetricTieBreak Metric = "tie-break"
)

// Result is the outcome of one identification query. When Matched is
// false the query found no acceptable entry; that is a normal terminal
// outcome, not an error.
type Result struct {
	Matched  bool
	Entry    catalog.Entry
	Metric   Metric
	Distance int
}

// NoMatch is the explicit no-identification result.
func NoMatch() Result {
	return Result{}
}

// Thresholds bundles the two acceptance limits for a query.
type Thresholds struct {
	// MaxHamming is the largest acceptable primary (Hamming) distance.
	MaxHamming int `yaml:"max_hamming"`

	// MaxTieBreak is the largest acceptable secondary (hex-digit)
	// distance when the primary distance is tied between entries.
	MaxTieBreak int `yaml:"max_tie_break"`
}

// DefaultThresholds returns the thresholds the live scanner was tuned with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxHamming:  14,
		MaxTieBreak: 40,
	}
}

// Identify scans the catalog for the entry nearest to the query
// fingerprint.
//
// Hamming distance is the primary metric. If exactly one entry achieves
// the minimum distance and it is within t.MaxHamming, that entry wins with
// metric "primary". If several entries tie, the hex-digit secondary
// distance decides among them; a tie-break winner whose secondary distance
// exceeds t.MaxTieBreak is discarded entirely — an unresolved tie is
// treated as no identification rather than a guess. Residual secondary
// ties resolve to the first tied entry in catalog enumeration order.
//
// The scan is linear in the catalog size. A nil or empty catalog yields
// NoMatch for every query.
func Identify(query phash.Fingerprint, cat *catalog.Catalog, t Thresholds) Result {
	if cat == nil || cat.Len() == 0 {
		return NoMatch()
	}

	entries := cat.Entries()

	minDist := -1
	var tied []catalog.Entry
	for _, e := range entries {
		d := query.Distance(e.Hash)
		switch {
		case minDist < 0 || d < minDist:
			minDist = d
			tied = tied[:0]
			tied = append(tied, e)
		case d == minDist:
			tied = append(tied, e)
		}
	}

	if minDist > t.MaxHamming {
		return NoMatch()
	}

	if len(tied) == 1 {
		return Result{
			Matched:  true,
			Entry:    tied[0],
			Metric:   MetricPrimary,
			Distance: minDist,
		}
	}

	// Tie on the primary metric: fall through to the hex-digit distance.
	// The first minimal entry in enumeration order wins residual ties.
	best := tied[0]
	bestDigit := query.DigitDistance(best.Hash)
	for _, e := range tied[1:] {
		if d := query.DigitDistance(e.Hash); d < bestDigit {
			bestDigit = d
			best = e
		}
	}

	if bestDigit > t.MaxTieBreak {
		return NoMatch()
	}

	return Result{
		Matched:  true,
		Entry:    best,
		Metric:   MetricTieBreak,
		Distance: bestDigit,
	}
}
