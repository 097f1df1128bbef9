package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("config: invalid")

// Formats accepted for color maps.
var ColorFormats = []string{"webp", "png", "tga"}

// Config holds all generation, output and server settings.
type Config struct {
	// Generation
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Profile   string `json:"profile"`
	Noise     string `json:"noise"`
	Seed      int64  `json:"seed"`
	Randomize bool   `json:"randomize"`
	Count     int    `json:"count"`

	// Output
	OutputDir      string   `json:"output_dir"`
	Formats        []string `json:"formats"`
	FloatMaps      bool     `json:"float_maps"`
	ThumbnailWidth int      `json:"thumbnail_width"`
	PreviewSize    int      `json:"preview_size"`

	// Runtime
	Workers int    `json:"workers"`
	Listen  string `json:"listen"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Profile != "" {
		c.Profile = flags.Profile
	}
	if flags.Noise != "" {
		c.Noise = flags.Noise
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Randomize {
		c.Randomize = true
	}
	if flags.Count > 0 {
		c.Count = flags.Count
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if len(flags.Formats) > 0 {
		c.Formats = flags.Formats
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Listen != "" {
		c.Listen = flags.Listen
	}

	// Defaults
	if c.Width <= 0 {
		c.Width = 2048
	}
	if c.Height <= 0 {
		c.Height = c.Width / 2
	}
	if c.Profile == "" {
		c.Profile = "earthlike"
	}
	if c.Noise == "" {
		c.Noise = "simplex"
	}
	if c.Count <= 0 {
		c.Count = 1
	}
	if c.OutputDir == "" {
		cwd, _ := os.Getwd()
		c.OutputDir = filepath.Join(cwd, "planets")
	}
	if len(c.Formats) == 0 {
		c.Formats = []string{"webp"}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Listen == "" {
		c.Listen = ":8080"
	}
}

// Validate reports settings that Resolve cannot repair.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	for _, f := range c.Formats {
		if !slices.Contains(ColorFormats, f) {
			return fmt.Errorf("%w: format %q (want one of %v)", ErrInvalid, f, ColorFormats)
		}
	}
	if c.ThumbnailWidth < 0 || c.PreviewSize < 0 {
		return fmt.Errorf("%w: negative thumbnail or preview size", ErrInvalid)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width       int
	Height      int
	Profile     string
	Noise       string
	Seed        int64
	Randomize   bool
	Count       int
	OutputDir   string
	Formats     []string
	PreviewSize int
	Workers     int
	Listen      string
}
