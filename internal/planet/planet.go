// Package planet generates the texture set of a procedural planet.
//
// A generation call resolves a seed, draws every random parameter from a
// single stream seeded by it and then runs a profile: a fixed chain of
// derivations from noise fields to color, displacement, bump and light
// maps.
package planet

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/derive"
	"planet-texgen/internal/noise"
	"planet-texgen/internal/terrain"
)

// ErrUnknownProfile is returned for an unregistered profile name.
var ErrUnknownProfile = errors.New("planet: unknown profile")

const (
	DefaultWidth   = 2048
	DefaultHeight  = 1024
	DefaultSeed    = 368579
	DefaultProfile = "earthlike"

	// randomSeedRange bounds seeds picked when none is supplied.
	randomSeedRange = 1000000
)

// Planet is the finished texture bundle. It is not modified after
// Generate returns.
type Planet struct {
	Name    string
	Profile string
	Seed    int64
	Params  Params
	Size    buffer.Size

	Color        *buffer.Color
	Displacement *buffer.Float
	Bump         *buffer.Color
	Light        *buffer.Color

	// Intermediates. Nil for profiles that do not build them.
	Elevation   *buffer.Float
	Temperature *buffer.Float
	Terrain     *buffer.Category
}

// Options controls a generation call.
type Options struct {
	Width, Height int
	// Seed drives every random choice. 0 means "not supplied": the default
	// seed is used, or a random one in Randomize mode.
	Seed      int64
	Randomize bool
	Profile   string
	// Noise names the 3D primitive, see noise.SourceNames.
	Noise   string
	Workers int
}

func (o Options) resolve() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Profile == "" {
		o.Profile = DefaultProfile
	}
	if o.Noise == "" {
		o.Noise = noise.SourceSimplex
	}
	if o.Seed == 0 {
		if o.Randomize {
			o.Seed = 1 + time.Now().UnixNano()%randomSeedRange
		} else {
			o.Seed = DefaultSeed
		}
	}
	return o
}

// Generation is the state shared by the steps of one call.
type Generation struct {
	Size     buffer.Size
	Seed     int64
	Params   Params
	Rand     *rand.Rand
	Pipeline *derive.Pipeline
	Source   noise.Source3D
}

// Builder runs a profile and fills in the planet's maps.
type Builder func(ctx context.Context, g *Generation, p *Planet) error

var (
	profilesMu sync.RWMutex
	profiles   = map[string]Builder{}
)

// Register adds a profile under name, replacing any earlier one.
func Register(name string, b Builder) {
	if name == "" || b == nil {
		return
	}
	profilesMu.Lock()
	profiles[name] = b
	profilesMu.Unlock()
}

// Lookup returns the builder registered under name.
func Lookup(name string) (Builder, error) {
	profilesMu.RLock()
	b, ok := profiles[name]
	profilesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownProfile, name, Profiles())
	}
	return b, nil
}

// Profiles lists the registered profile names in sorted order.
func Profiles() []string {
	profilesMu.RLock()
	defer profilesMu.RUnlock()
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Generate builds a planet. Cancelling ctx aborts between steps with
// ctx.Err(); on any error no planet is returned.
func Generate(ctx context.Context, opts Options) (*Planet, error) {
	opts = opts.resolve()
	build, err := Lookup(opts.Profile)
	if err != nil {
		return nil, err
	}
	src, err := noise.SourceByName(opts.Noise, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("planet: %w", err)
	}
	rng := rand.New(rand.NewPCG(uint64(opts.Seed), masterStream))
	params := DefaultParams()
	if opts.Randomize {
		params = params.Randomize(rng)
	}
	g := &Generation{
		Size:   buffer.Size{W: opts.Width, H: opts.Height},
		Seed:   opts.Seed,
		Params: params,
		Rand:   rng,
		Source: src,
	}
	g.Pipeline = derive.New(rng.Uint64(), opts.Workers)

	p := &Planet{
		Name:    fmt.Sprintf("%s-%d", opts.Profile, opts.Seed),
		Profile: opts.Profile,
		Seed:    opts.Seed,
		Params:  params,
		Size:    g.Size,
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := build(ctx, g, p); err != nil {
		return nil, err
	}
	if err := fillDefaults(g, p); err != nil {
		return nil, err
	}
	return p, nil
}

// masterStream selects the PCG stream of the per-call generator.
const masterStream = 0x9e3779b97f4a7c15

// step runs fn unless ctx is already done, wrapping fn's error with name.
func step(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return fmt.Errorf("planet: %s: %w", name, err)
	}
	return nil
}

// TerrainShares returns the fraction of cells per terrain type name.
func TerrainShares(g *buffer.Category) map[string]float64 {
	counts := map[string]int{}
	for _, c := range g.Cells() {
		counts[terrain.Type(c).String()]++
	}
	shares := make(map[string]float64, len(counts))
	for name, n := range counts {
		shares[name] = float64(n) / float64(g.Len())
	}
	return shares
}
