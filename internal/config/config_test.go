package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
catalog_path: /data/catalog.json
processing_height: 720
matching:
  max_hamming: 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.CatalogPath != "/data/catalog.json" {
		t.Errorf("CatalogPath = %q", cfg.CatalogPath)
	}
	if cfg.ProcessingHeight != 720 {
		t.Errorf("ProcessingHeight = %d, want 720", cfg.ProcessingHeight)
	}
	if cfg.Matching.MaxHamming != 10 {
		t.Errorf("Matching.MaxHamming = %d, want 10", cfg.Matching.MaxHamming)
	}

	// Untouched fields keep their defaults.
	def := Default()
	if cfg.FrameInterval != def.FrameInterval {
		t.Errorf("FrameInterval = %d, want default %d", cfg.FrameInterval, def.FrameInterval)
	}
	if cfg.Matching.MaxTieBreak != def.Matching.MaxTieBreak {
		t.Errorf("Matching.MaxTieBreak = %d, want default %d", cfg.Matching.MaxTieBreak, def.Matching.MaxTieBreak)
	}
	if cfg.Detection.MinConvexity != def.Detection.MinConvexity {
		t.Errorf("Detection.MinConvexity = %v, want default %v", cfg.Detection.MinConvexity, def.Detection.MinConvexity)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "detection: [not a map"},
		{name: "even blur kernel", content: "detection:\n  blur_kernel: 4\n"},
		{name: "zero processing height", content: "processing_height: 0\n"},
		{name: "negative frame interval", content: "frame_interval: -1\n"},
		{name: "inverted area ratios", content: "detection:\n  min_area_ratio: 0.7\n  max_area_ratio: 0.2\n"},
		{name: "negative threshold", content: "matching:\n  max_hamming: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Fatal("Load() succeeded, want error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() succeeded for missing file")
	}
}
