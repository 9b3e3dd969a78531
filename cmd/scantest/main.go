// Command scantest runs card detection and identification on a single image.
package main

import (
	"flag"
	"fmt"
	"os"

	"cardscan/internal/catalog"
	"cardscan/internal/config"
	"cardscan/internal/detect"
	"cardscan/internal/imgio"
	"cardscan/internal/match"
	"cardscan/internal/phash"
	"cardscan/internal/version"
	"cardscan/internal/warp"
)

func main() {
	imagePath := flag.String("image", "", "Path to card photo (PNG, JPEG, or TIFF)")
	catalogPath := flag.String("catalog", "", "Path to reference fingerprint JSON (omit to only detect)")
	configPath := flag.String("config", "", "Optional YAML config file")
	height := flag.Int("height", 0, "Processing height override")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("scantest %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	}

	if *imagePath == "" {
		fmt.Println("Usage: scantest -image <path> [-catalog <path>] [-config <path>] [-height 1000]")
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	if *height > 0 {
		cfg.ProcessingHeight = *height
	}

	img, format, err := imgio.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}

	bounds := img.Bounds()
	fmt.Printf("Loaded %s image: %dx%d pixels\n", format, bounds.Dx(), bounds.Dy())
	fmt.Printf("Processing height: %d\n", cfg.ProcessingHeight)

	mat, err := detect.ImageToMat(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to convert image: %v\n", err)
		os.Exit(1)
	}
	defer mat.Close()

	candidates, err := detect.FindCards(mat, cfg.ProcessingHeight, cfg.Detection)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nDetected %d card candidate(s):\n", len(candidates))
	fmt.Printf("%-4s %12s %10s %14s %10s\n", "#", "Area", "BoxAspect", "Eccentricity", "Convexity")
	for i, cand := range candidates {
		fmt.Printf("%-4d %12.0f %10.3f %14.3f %10.3f\n",
			i, cand.Area, cand.BoxAspect, cand.Eccentricity, cand.Convexity)
	}

	var cat *catalog.Catalog
	if *catalogPath != "" {
		cat, err = catalog.Load(*catalogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nCatalog: %d entries\n", cat.Len())
	}

	for i, cand := range candidates {
		card, err := warp.Rectify(mat, cand.Corners[:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Candidate %d unusable: %v\n", i, err)
			continue
		}

		cardImg, err := card.Image.ToImage()
		card.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Candidate %d unusable: %v\n", i, err)
			continue
		}

		fp := phash.FromImage(cardImg)
		orientation := "portrait"
		if card.Landscape {
			orientation = "landscape"
		}
		fmt.Printf("\nCandidate %d: fingerprint %s (%s)\n", i, fp, orientation)

		if cat == nil {
			continue
		}
		res := match.Identify(fp, cat, cfg.Matching)
		if res.Matched {
			fmt.Printf("  Match: %s (ID: %s), metric %s, distance %d\n",
				res.Entry.Name, res.Entry.ID, res.Metric, res.Distance)
		} else {
			fmt.Printf("  No match within thresholds (Hamming <= %d, tie-break <= %d)\n",
				cfg.Matching.MaxHamming, cfg.Matching.MaxTieBreak)
		}
	}
}
