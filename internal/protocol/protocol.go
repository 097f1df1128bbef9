// Package protocol defines the request/response messages exchanged
// between a planet generator and the renderer that displays its output.
package protocol

import (
	"errors"
	"fmt"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/planet"
)

// Response types.
const (
	TypeDone  = "done"
	TypeError = "error"
)

// ErrRemote wraps an error reported by the generator side.
var ErrRemote = errors.New("protocol: generator error")

// Request asks for one planet. Zero fields take the generator's defaults.
type Request struct {
	ID        string `json:"id,omitempty"`
	Randomize bool   `json:"randomize"`
	Seed      int64  `json:"seed,omitempty"`
	Profile   string `json:"profile,omitempty"`
	Noise     string `json:"noise,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// Options converts the request into generation options.
func (r Request) Options() planet.Options {
	return planet.Options{
		Width:     r.Width,
		Height:    r.Height,
		Seed:      r.Seed,
		Randomize: r.Randomize,
		Profile:   r.Profile,
		Noise:     r.Noise,
	}
}

// Response answers one Request.
type Response struct {
	Type   string         `json:"type"`
	ID     string         `json:"id,omitempty"`
	Planet *PlanetPayload `json:"planet,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Err returns the remote error of a failure response, or nil.
func (r Response) Err() error {
	if r.Type == TypeDone {
		return nil
	}
	if r.Error == "" {
		return fmt.Errorf("%w: response type %q", ErrRemote, r.Type)
	}
	return fmt.Errorf("%w: %s", ErrRemote, r.Error)
}

// Done wraps a finished planet.
func Done(id string, p *planet.Planet) Response {
	return Response{Type: TypeDone, ID: id, Planet: NewPayload(p)}
}

// Failure reports a generation error.
func Failure(id string, err error) Response {
	return Response{Type: TypeError, ID: id, Error: err.Error()}
}

// PlanetPayload carries the four renderer maps. Color maps are W·H
// words in [R, G, B, 0xFF] byte order; the displacement map is W·H
// little-endian float32 values. Byte slices travel as base64 in JSON.
type PlanetPayload struct {
	Name            string        `json:"name"`
	Profile         string        `json:"profile"`
	Seed            int64         `json:"seed"`
	Width           int           `json:"width"`
	Height          int           `json:"height"`
	Params          planet.Params `json:"params"`
	ColorMap        []byte        `json:"colorMap"`
	DisplacementMap []byte        `json:"displacementMap"`
	BumpMap         []byte        `json:"bumpMap"`
	LightMap        []byte        `json:"lightMap"`
}

// NewPayload encodes the maps of p.
func NewPayload(p *planet.Planet) *PlanetPayload {
	return &PlanetPayload{
		Name:            p.Name,
		Profile:         p.Profile,
		Seed:            p.Seed,
		Width:           p.Size.W,
		Height:          p.Size.H,
		Params:          p.Params,
		ColorMap:        buffer.RGBABytes(p.Color),
		DisplacementMap: buffer.Float32Bytes(p.Displacement),
		BumpMap:         buffer.RGBABytes(p.Bump),
		LightMap:        buffer.RGBABytes(p.Light),
	}
}

// Maps are the decoded payload buffers.
type Maps struct {
	Color        *buffer.Color
	Displacement *buffer.Float
	Bump         *buffer.Color
	Light        *buffer.Color
}

// Decode rebuilds the buffers, validating every map against the
// declared size.
func (pp *PlanetPayload) Decode() (*Maps, error) {
	var (
		m   Maps
		err error
	)
	if m.Color, err = buffer.ColorFromRGBA(pp.Width, pp.Height, pp.ColorMap); err != nil {
		return nil, fmt.Errorf("protocol: colorMap: %w", err)
	}
	if m.Displacement, err = buffer.FloatFromBytes(pp.Width, pp.Height, pp.DisplacementMap); err != nil {
		return nil, fmt.Errorf("protocol: displacementMap: %w", err)
	}
	if m.Bump, err = buffer.ColorFromRGBA(pp.Width, pp.Height, pp.BumpMap); err != nil {
		return nil, fmt.Errorf("protocol: bumpMap: %w", err)
	}
	if m.Light, err = buffer.ColorFromRGBA(pp.Width, pp.Height, pp.LightMap); err != nil {
		return nil, fmt.Errorf("protocol: lightMap: %w", err)
	}
	return &m, nil
}
