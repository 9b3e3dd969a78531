// Command livescan identifies trading cards from a webcam feed. Every Nth
// frame is run through the detection pipeline and the latest results are
// drawn over the video. Press space to force processing of the next frame,
// r to reload the catalog, q to quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"

	"cardscan/internal/catalog"
	"cardscan/internal/config"
	"cardscan/internal/scanner"
	"cardscan/internal/version"
	"cardscan/pkg/colorutil"
	"cardscan/pkg/geometry"

	"gocv.io/x/gocv"
)

func main() {
	camera := flag.Int("camera", 0, "Camera device index")
	catalogPath := flag.String("catalog", "card_hashes.json", "Path to reference fingerprint JSON")
	configPath := flag.String("config", "", "Optional YAML config file")
	interval := flag.Int("interval", 0, "Process every Nth frame override")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("livescan %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Error("config load failed", "error", err)
			os.Exit(1)
		}
	}
	cfg.CatalogPath = *catalogPath
	if *interval > 0 {
		cfg.FrameInterval = *interval
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Error("catalog load failed", "error", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded", "entries", cat.Len(), "path", cfg.CatalogPath)

	sc := scanner.New(cfg, cat, logger)

	webcam, err := gocv.OpenVideoCapture(*camera)
	if err != nil {
		logger.Error("cannot open camera", "index", *camera, "error", err)
		os.Exit(1)
	}
	defer webcam.Close()

	window := gocv.NewWindow("Card Scanner")
	defer window.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	logger.Info("live scanner started",
		"interval", cfg.FrameInterval,
		"max_hamming", cfg.Matching.MaxHamming,
		"max_tie_break", cfg.Matching.MaxTieBreak)

	ctx := context.Background()
	frameCount := 0
	var latest []scanner.Identification

	for {
		if ok := webcam.Read(&frame); !ok || frame.Empty() {
			logger.Error("camera read failed")
			return
		}

		frameCount++
		if frameCount%cfg.FrameInterval == 0 {
			ids, err := sc.ScanFrame(ctx, frame)
			if err != nil {
				logger.Error("scan failed", "error", err)
				continue
			}
			latest = ids
			for _, id := range ids {
				if id.Match.Matched {
					logger.Info("identified",
						"name", id.Match.Entry.Name,
						"id", id.Match.Entry.ID,
						"metric", id.Match.Metric,
						"distance", id.Match.Distance)
				}
			}
		}

		drawOverlay(&frame, latest)
		window.IMShow(frame)

		switch window.WaitKey(1) {
		case 'q':
			logger.Info("stopping scanner")
			return
		case ' ':
			// Force processing of the next frame.
			frameCount = cfg.FrameInterval - 1
		case 'r':
			if err := sc.ReloadCatalog(); err != nil {
				logger.Error("catalog reload failed", "error", err)
			}
		}
	}
}

// drawOverlay draws the latest candidate outlines and match labels.
func drawOverlay(frame *gocv.Mat, ids []scanner.Identification) {
	for _, id := range ids {
		corners := id.Candidate.Corners
		for i := range corners {
			a := corners[i]
			b := corners[(i+1)%len(corners)]
			gocv.Line(frame, image.Pt(int(a.X), int(a.Y)), image.Pt(int(b.X), int(b.Y)), colorutil.Green, 2)
		}

		label := "Unknown"
		col := colorutil.Red
		if id.Match.Matched {
			label = fmt.Sprintf("%s (%s)", id.Match.Entry.Name, id.Match.Entry.ID)
			col = colorutil.Blue
		}

		box := geometry.BoundingBox(corners[:])
		y := int(box.Y) - 10
		if y < 15 {
			y = 15
		}
		gocv.PutText(frame, label, image.Pt(int(box.X), y), gocv.FontHersheySimplex, 0.5, col, 1)
	}
}
