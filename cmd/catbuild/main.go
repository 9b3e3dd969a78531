// Command catbuild fingerprints a directory of reference card scans and
// writes the catalog JSON the scanner matches against.
//
// Each image file becomes one entry: the filename stem is the entry ID and,
// unless overridden later, the display name. Scans are expected to be
// tightly cropped to the card face; no detection runs here.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cardscan/internal/catalog"
	"cardscan/internal/imgio"
	"cardscan/internal/phash"
	"cardscan/internal/version"
)

func main() {
	imageDir := flag.String("images", "", "Directory of reference card scans")
	outPath := flag.String("out", "catalog.json", "Output catalog file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("catbuild %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	}

	if *imageDir == "" {
		fmt.Println("Usage: catbuild -images <dir> [-out catalog.json]")
		os.Exit(1)
	}

	paths, err := imgio.ListImages(*imageDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list images: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "No images found in %s\n", *imageDir)
		os.Exit(1)
	}

	entries := make([]catalog.Entry, 0, len(paths))
	for _, path := range paths {
		img, _, err := imgio.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", path, err)
			continue
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		fp := phash.FromImage(img)
		entries = append(entries, catalog.Entry{ID: stem, Name: stem, Hash: fp})
		fmt.Printf("%s  %s\n", fp, stem)
	}

	if err := catalog.Save(*outPath, entries); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write catalog: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d entries to %s\n", len(entries), *outPath)
}
