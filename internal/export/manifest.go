package export

import (
	"encoding/json"
	"fmt"
	"os"

	"planet-texgen/internal/planet"
)

// ManifestEntry represents one planet in the output manifest.
type ManifestEntry struct {
	Name    string             `json:"name"`
	Profile string             `json:"profile"`
	Seed    int64              `json:"seed"`
	Width   int                `json:"width"`
	Height  int                `json:"height"`
	Params  planet.Params      `json:"params"`
	Terrain map[string]float64 `json:"terrain,omitempty"`
	Files   []string           `json:"files"`
}

// NewManifestEntry describes p and the files written for it.
func NewManifestEntry(p *planet.Planet, files []string) ManifestEntry {
	e := ManifestEntry{
		Name:    p.Name,
		Profile: p.Profile,
		Seed:    p.Seed,
		Width:   p.Size.W,
		Height:  p.Size.H,
		Params:  p.Params,
		Files:   files,
	}
	if p.Terrain != nil {
		e.Terrain = planet.TerrainShares(p.Terrain)
	}
	return e
}

// WriteManifest writes manifest.json to path.
func WriteManifest(path string, entries []ManifestEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("export: manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) ([]ManifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("export: read %s: %w", path, err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("export: parse %s: %w", path, err)
	}
	return entries, nil
}
