package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a grid is requested with a non-positive dimension.
	ErrInvalidSize = errors.New("buffer: invalid size")
	// ErrOutOfBounds is returned for coordinates outside [0,W)×[0,H).
	ErrOutOfBounds = errors.New("buffer: coordinate out of bounds")
)

// Kind enumerates the three buffer variants.
type Kind int

const (
	// KindFloat holds unbounded scalar values (elevation, temperature, noise).
	KindFloat Kind = iota
	// KindCategory holds small non-negative category codes.
	KindCategory
	// KindColor holds packed opaque RGB words.
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindCategory:
		return "category"
	case KindColor:
		return "color"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Cell is the set of cell types a Grid can hold.
type Cell interface {
	~float32 | ~int16 | ~uint32
}

// Size describes grid dimensions.
type Size struct {
	W int
	H int
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Grid stores a W×H grid of homogeneous cells in row-major order.
type Grid[T Cell] struct {
	W, H int
	data []T
}

// Float, Category and Color are the three concrete buffer variants.
type (
	Float    = Grid[float32]
	Category = Grid[int16]
	Color    = Grid[RGB]
)

// MaxCells bounds W·H of any grid.
const MaxCells = 1 << 30

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 || w > MaxCells/h {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return nil
}

// New allocates a zero-initialized grid. Non-positive dimensions and
// grids above MaxCells fail with ErrInvalidSize.
func New[T Cell](w, h int) (*Grid[T], error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}, nil
}

// FromCells builds a grid around an existing row-major slice. The slice
// length must equal w*h.
func FromCells[T Cell](w, h int, cells []T) (*Grid[T], error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	if len(cells) != w*h {
		return nil, fmt.Errorf("%w: %dx%d with %d cells", ErrInvalidSize, w, h, len(cells))
	}
	return &Grid[T]{W: w, H: h, data: cells}, nil
}

// Kind reports which variant the grid holds.
func (g *Grid[T]) Kind() Kind {
	var zero T
	switch any(zero).(type) {
	case float32:
		return KindFloat
	case int16:
		return KindCategory
	}
	return KindColor
}

// Size returns the grid dimensions.
func (g *Grid[T]) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so callers can read values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Len returns the number of cells.
func (g *Grid[T]) Len() int { return len(g.data) }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Get returns the cell at (x, y).
func (g *Grid[T]) Get(x, y int) (T, error) {
	if !g.InBounds(x, y) {
		var zero T
		return zero, g.boundsErr(x, y)
	}
	return g.data[y*g.W+x], nil
}

// Set stores v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) error {
	if !g.InBounds(x, y) {
		return g.boundsErr(x, y)
	}
	g.data[y*g.W+x] = v
	return nil
}

// At returns the cell at (x, y) for callers that have already validated
// their coordinates. Out-of-range access panics with ErrOutOfBounds.
func (g *Grid[T]) At(x, y int) T {
	if !g.InBounds(x, y) {
		panic(g.boundsErr(x, y))
	}
	return g.data[y*g.W+x]
}

// WrapX wraps x around the grid width (longitude).
func (g *Grid[T]) WrapX(x int) int {
	return (x%g.W + g.W) % g.W
}

// ClampY clamps y into [0, H-1] (latitude does not wrap).
func (g *Grid[T]) ClampY(y int) int {
	if y < 0 {
		return 0
	}
	if y >= g.H {
		return g.H - 1
	}
	return y
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid[T]) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	cells := make([]T, len(g.data))
	copy(cells, g.data)
	return &Grid[T]{W: g.W, H: g.H, data: cells}
}

// MinMax returns the smallest and largest cell values.
func (g *Grid[T]) MinMax() (lo, hi T) {
	if len(g.data) == 0 {
		return lo, hi
	}
	lo, hi = g.data[0], g.data[0]
	for _, v := range g.data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func (g *Grid[T]) boundsErr(x, y int) error {
	return fmt.Errorf("%w: (%d,%d) in %dx%d %s grid", ErrOutOfBounds, x, y, g.W, g.H, g.Kind())
}
