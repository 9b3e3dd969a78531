// Package config loads scanner configuration from YAML files.
package config

import (
	"fmt"
	"os"

	"cardscan/internal/detect"
	"cardscan/internal/match"

	"gopkg.in/yaml.v3"
)

// Config bundles everything the identification pipeline needs: where the
// reference catalog lives, how frames are processed, and the detection and
// matching thresholds.
type Config struct {
	// CatalogPath points at the reference fingerprint JSON file.
	CatalogPath string `yaml:"catalog_path"`

	// ProcessingHeight is the frame height, in pixels, that detection
	// downscales to.
	ProcessingHeight int `yaml:"processing_height"`

	// FrameInterval makes the live scanner process every Nth camera
	// frame.
	FrameInterval int `yaml:"frame_interval"`

	Detection detect.Params    `yaml:"detection"`
	Matching  match.Thresholds `yaml:"matching"`
}

// Default returns the configuration the scanner ships with.
func Default() Config {
	return Config{
		ProcessingHeight: 1000,
		FrameInterval:    3,
		Detection:        detect.DefaultParams(),
		Matching:         match.DefaultThresholds(),
	}
}

// Load reads a YAML file over the defaults, so a config file only needs to
// state the values it changes.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.ProcessingHeight <= 0 {
		return fmt.Errorf("processing_height must be positive, got %d", c.ProcessingHeight)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame_interval must be positive, got %d", c.FrameInterval)
	}
	if c.Detection.BlurKernel < 1 || c.Detection.BlurKernel%2 == 0 {
		return fmt.Errorf("detection.blur_kernel must be odd and positive, got %d", c.Detection.BlurKernel)
	}
	if c.Detection.CloseKernel < 1 || c.Detection.CloseKernel%2 == 0 {
		return fmt.Errorf("detection.close_kernel must be odd and positive, got %d", c.Detection.CloseKernel)
	}
	if c.Detection.MinAreaRatio <= 0 || c.Detection.MaxAreaRatio <= c.Detection.MinAreaRatio {
		return fmt.Errorf("detection area ratios must satisfy 0 < min < max, got [%g, %g]",
			c.Detection.MinAreaRatio, c.Detection.MaxAreaRatio)
	}
	if c.Detection.PolyEpsilon <= 0 {
		return fmt.Errorf("detection.poly_epsilon must be positive, got %g", c.Detection.PolyEpsilon)
	}
	if c.Matching.MaxHamming < 0 || c.Matching.MaxTieBreak < 0 {
		return fmt.Errorf("matching thresholds must be non-negative, got %d/%d",
			c.Matching.MaxHamming, c.Matching.MaxTieBreak)
	}
	return nil
}
