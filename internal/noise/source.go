package noise

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// ErrUnknownSource is returned by SourceByName for unregistered names.
var ErrUnknownSource = errors.New("noise: unknown source")

// Source3D is a 3D gradient noise primitive.
type Source3D interface {
	Eval3(x, y, z float64) float64
}

// Simplex is the fixed-table simplex primitive. It ignores seeds; callers
// offset coordinates instead.
type Simplex struct{}

func (Simplex) Eval3(x, y, z float64) float64 { return Noise3D(x, y, z) }

// perlinSource adapts go-perlin's generator to Source3D.
type perlinSource struct {
	p *perlin.Perlin
}

func (s perlinSource) Eval3(x, y, z float64) float64 { return s.p.Noise3D(x, y, z) }

// Source names accepted by SourceByName.
const (
	SourceSimplex     = "simplex"
	SourceOpenSimplex = "opensimplex"
	SourcePerlin      = "perlin"
)

var sources = map[string]func(seed int64) Source3D{
	SourceSimplex: func(int64) Source3D { return Simplex{} },
	SourceOpenSimplex: func(seed int64) Source3D {
		return opensimplex.New(seed)
	},
	SourcePerlin: func(seed int64) Source3D {
		return perlinSource{p: perlin.NewPerlin(2, 2, 3, seed)}
	},
}

// SourceByName builds a primitive by name. The empty name selects simplex.
func SourceByName(name string, seed int64) (Source3D, error) {
	if name == "" {
		name = SourceSimplex
	}
	mk, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownSource, name, SourceNames())
	}
	return mk(seed), nil
}

// SourceNames lists the registered primitives in sorted order.
func SourceNames() []string {
	names := make([]string, 0, len(sources))
	for n := range sources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
