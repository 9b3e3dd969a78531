package scanner

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"testing"

	"cardscan/internal/catalog"
	"cardscan/internal/config"
	"cardscan/internal/detect"

	"gocv.io/x/gocv"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Entry{
		{ID: "base1-4", Name: "Charizard", Hash: 0x0f0f0f0f00000000},
	})
	if err != nil {
		t.Fatalf("catalog.New() error: %v", err)
	}
	return cat
}

func TestNewNilLogger(t *testing.T) {
	s := New(config.Default(), testCatalog(t), nil)
	if s.log == nil {
		t.Fatal("nil logger was not replaced")
	}
}

func TestSetCatalogSwapsSnapshot(t *testing.T) {
	first := testCatalog(t)
	s := New(config.Default(), first, slog.Default())

	if s.Catalog() != first {
		t.Fatal("Catalog() did not return the initial snapshot")
	}

	second, err := catalog.New([]catalog.Entry{
		{ID: "base1-58", Name: "Pikachu", Hash: 0xffffffff00000000},
	})
	if err != nil {
		t.Fatalf("catalog.New() error: %v", err)
	}

	s.SetCatalog(second)
	if s.Catalog() != second {
		t.Fatal("SetCatalog did not swap the snapshot")
	}
}

func TestScanFrameEmptyMat(t *testing.T) {
	s := New(config.Default(), testCatalog(t), slog.Default())

	empty := gocv.NewMat()
	defer empty.Close()

	_, err := s.ScanFrame(context.Background(), empty)
	if !errors.Is(err, detect.ErrBadImage) {
		t.Fatalf("ScanFrame(empty) error = %v, want ErrBadImage", err)
	}
}

func TestScanFrameNoCandidates(t *testing.T) {
	s := New(config.Default(), testCatalog(t), slog.Default())

	frame := gocv.NewMatWithSize(600, 800, gocv.MatTypeCV8UC3)
	defer frame.Close()

	ids, err := s.ScanFrame(context.Background(), frame)
	if err != nil {
		t.Fatalf("ScanFrame() error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("got %d identifications for a blank frame, want 0", len(ids))
	}
}

func TestScanFrameReportsUnmatched(t *testing.T) {
	cfg := config.Default()
	cfg.ProcessingHeight = 600
	s := New(cfg, testCatalog(t), slog.Default())

	// Card-shaped white rectangle with no catalog counterpart: it should
	// surface as an identification with Match.Matched false.
	frame := gocv.NewMatWithSize(600, 800, gocv.MatTypeCV8UC3)
	defer frame.Close()
	gocv.Rectangle(&frame, image.Rect(100, 100, 315, 400), color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	ids, err := s.ScanFrame(context.Background(), frame)
	if err != nil {
		t.Fatalf("ScanFrame() error: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("got %d identifications, want 1", len(ids))
	}

	id := ids[0]
	if id.Landscape {
		t.Error("portrait rectangle reported as landscape")
	}
	if id.Match.Matched {
		t.Errorf("uniform white card matched %q, want no match", id.Match.Entry.ID)
	}
}

func TestScanFrameCancelled(t *testing.T) {
	cfg := config.Default()
	cfg.ProcessingHeight = 600
	s := New(cfg, testCatalog(t), slog.Default())

	frame := gocv.NewMatWithSize(600, 800, gocv.MatTypeCV8UC3)
	defer frame.Close()
	gocv.Rectangle(&frame, image.Rect(100, 100, 315, 400), color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.ScanFrame(ctx, frame); !errors.Is(err, context.Canceled) {
		t.Fatalf("ScanFrame(cancelled) error = %v, want context.Canceled", err)
	}
}
