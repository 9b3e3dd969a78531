// Package scanner drives the full identification pipeline over single
// frames: detect candidates, rectify each one, fingerprint the canonical
// view, and match it against the reference catalog.
package scanner

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"cardscan/internal/catalog"
	"cardscan/internal/config"
	"cardscan/internal/detect"
	"cardscan/internal/match"
	"cardscan/internal/phash"
	"cardscan/internal/warp"

	"gocv.io/x/gocv"
	"golang.org/x/sync/errgroup"
)

// Identification pairs a detected candidate with its fingerprint and match
// outcome. An unmatched candidate is still reported, with Match.Matched
// false.
type Identification struct {
	Candidate   detect.Candidate
	Fingerprint phash.Fingerprint
	Landscape   bool
	Match       match.Result
}

// Scanner holds the pipeline configuration and the current catalog
// snapshot. It is safe for concurrent use: the catalog pointer is swapped
// atomically on reload and every scan works against the snapshot it
// started with.
type Scanner struct {
	cfg config.Config
	log *slog.Logger
	cat atomic.Pointer[catalog.Catalog]
}

// New builds a scanner. A nil logger falls back to slog.Default.
func New(cfg config.Config, cat *catalog.Catalog, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scanner{cfg: cfg, log: logger}
	s.cat.Store(cat)
	return s
}

// Catalog returns the current catalog snapshot.
func (s *Scanner) Catalog() *catalog.Catalog {
	return s.cat.Load()
}

// SetCatalog swaps in a freshly loaded catalog. In-flight scans keep the
// snapshot they started with.
func (s *Scanner) SetCatalog(cat *catalog.Catalog) {
	s.cat.Store(cat)
}

// ReloadCatalog loads the configured catalog file and swaps it in.
func (s *Scanner) ReloadCatalog() error {
	cat, err := catalog.Load(s.cfg.CatalogPath)
	if err != nil {
		return err
	}
	s.SetCatalog(cat)
	s.log.Info("catalog reloaded", "entries", cat.Len(), "path", s.cfg.CatalogPath)
	return nil
}

// ScanFrame runs the pipeline on one BGR frame and returns an
// Identification per usable candidate.
//
// Candidates from the same frame are independent, so they are processed in
// parallel. Per-candidate geometry failures are absorbed (the candidate is
// dropped and logged at debug level); only input errors propagate.
// Cancellation is checked between candidates — a stage, once started, runs
// to completion.
func (s *Scanner) ScanFrame(ctx context.Context, frame gocv.Mat) ([]Identification, error) {
	candidates, err := detect.FindCards(frame, s.cfg.ProcessingHeight, s.cfg.Detection)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	// One catalog snapshot for the whole frame.
	cat := s.cat.Load()

	var (
		mu  sync.Mutex
		ids []Identification
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, cand := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			card, err := warp.Rectify(frame, cand.Corners[:])
			if err != nil {
				s.log.Debug("dropping candidate", "reason", err)
				return nil
			}
			defer card.Close()

			img, err := card.Image.ToImage()
			if err != nil {
				s.log.Debug("dropping candidate", "reason", err)
				return nil
			}

			fp := phash.FromImage(img)
			res := match.Identify(fp, cat, s.cfg.Matching)

			mu.Lock()
			ids = append(ids, Identification{
				Candidate:   cand,
				Fingerprint: fp,
				Landscape:   card.Landscape,
				Match:       res,
			})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}
