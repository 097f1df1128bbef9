// Package derive builds new buffers cell by cell from existing ones.
//
// Every combinator allocates a fresh output grid; sources are only read.
// Rows are split across a worker pool and each row gets its own random
// stream, so results do not depend on the worker count.
package derive

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"

	"planet-texgen/internal/buffer"
	"planet-texgen/internal/mathutil"
)

// ErrShapeMismatch is returned when sources do not share dimensions.
var ErrShapeMismatch = errors.New("derive: source shape mismatch")

// Pipeline carries the settings shared by a sequence of derivations.
// The zero value runs on GOMAXPROCS workers with seed 0.
type Pipeline struct {
	Seed    uint64
	Workers int

	stage atomic.Uint32
}

// New returns a pipeline with its own random seed.
func New(seed uint64, workers int) *Pipeline {
	return &Pipeline{Seed: seed, Workers: workers}
}

// Cell is the per-cell context handed to coordinate-aware combinators.
// Rand is the row's random stream; it must not escape the callback.
type Cell struct {
	X, Y int
	Rand *rand.Rand
}

// Map0 fills a grid of the given size from coordinates alone.
func Map0[O buffer.Cell](p *Pipeline, size buffer.Size, fn func(c Cell) O) (*buffer.Grid[O], error) {
	return generate(p, size, fn)
}

// Map1 applies fn to every cell of a.
func Map1[A, O buffer.Cell](p *Pipeline, a *buffer.Grid[A], fn func(a A) O) (*buffer.Grid[O], error) {
	av := a.Cells()
	return generate(p, a.Size(), func(c Cell) O {
		return fn(av[c.Y*a.W+c.X])
	})
}

// Map1XY is Map1 with the cell context.
func Map1XY[A, O buffer.Cell](p *Pipeline, a *buffer.Grid[A], fn func(a A, c Cell) O) (*buffer.Grid[O], error) {
	av := a.Cells()
	return generate(p, a.Size(), func(c Cell) O {
		return fn(av[c.Y*a.W+c.X], c)
	})
}

// Map2 combines two equally sized sources.
func Map2[A, B, O buffer.Cell](p *Pipeline, a *buffer.Grid[A], b *buffer.Grid[B], fn func(a A, b B) O) (*buffer.Grid[O], error) {
	if err := sameShape(a.Size(), b.Size()); err != nil {
		return nil, err
	}
	av, bv := a.Cells(), b.Cells()
	return generate(p, a.Size(), func(c Cell) O {
		i := c.Y*a.W + c.X
		return fn(av[i], bv[i])
	})
}

// Map2XY is Map2 with the cell context.
func Map2XY[A, B, O buffer.Cell](p *Pipeline, a *buffer.Grid[A], b *buffer.Grid[B], fn func(a A, b B, c Cell) O) (*buffer.Grid[O], error) {
	if err := sameShape(a.Size(), b.Size()); err != nil {
		return nil, err
	}
	av, bv := a.Cells(), b.Cells()
	return generate(p, a.Size(), func(c Cell) O {
		i := c.Y*a.W + c.X
		return fn(av[i], bv[i], c)
	})
}

// Map3 combines three equally sized sources.
func Map3[A, B, C, O buffer.Cell](p *Pipeline, a *buffer.Grid[A], b *buffer.Grid[B], cc *buffer.Grid[C], fn func(a A, b B, c C) O) (*buffer.Grid[O], error) {
	if err := sameShape(a.Size(), b.Size(), cc.Size()); err != nil {
		return nil, err
	}
	av, bv, cv := a.Cells(), b.Cells(), cc.Cells()
	return generate(p, a.Size(), func(c Cell) O {
		i := c.Y*a.W + c.X
		return fn(av[i], bv[i], cv[i])
	})
}

// Map3XY is Map3 with the cell context.
func Map3XY[A, B, C, O buffer.Cell](p *Pipeline, a *buffer.Grid[A], b *buffer.Grid[B], cc *buffer.Grid[C], fn func(a A, b B, c C, cell Cell) O) (*buffer.Grid[O], error) {
	if err := sameShape(a.Size(), b.Size(), cc.Size()); err != nil {
		return nil, err
	}
	av, bv, cv := a.Cells(), b.Cells(), cc.Cells()
	return generate(p, a.Size(), func(c Cell) O {
		i := c.Y*a.W + c.X
		return fn(av[i], bv[i], cv[i], c)
	})
}

func sameShape(sizes ...buffer.Size) error {
	for _, s := range sizes[1:] {
		if s != sizes[0] {
			return fmt.Errorf("%w: %s vs %s", ErrShapeMismatch, sizes[0], s)
		}
	}
	return nil
}

func (p *Pipeline) workers(rows int) int {
	n := runtime.GOMAXPROCS(0)
	if p != nil && p.Workers > 0 {
		n = p.Workers
	}
	return min(n, rows)
}

// nextStage returns the stream stage for the next derivation. A nil
// pipeline always uses stage 0.
func (p *Pipeline) nextStage() (seed uint64, stage uint32) {
	if p == nil {
		return 0, 0
	}
	return p.Seed, p.stage.Add(1)
}

func generate[O buffer.Cell](p *Pipeline, size buffer.Size, fn func(c Cell) O) (*buffer.Grid[O], error) {
	out, err := buffer.New[O](size.W, size.H)
	if err != nil {
		return nil, fmt.Errorf("derive: allocate %s: %w", size, err)
	}
	seed, stage := p.nextStage()
	cells := out.Cells()

	rowChan := make(chan int, size.H)
	for y := 0; y < size.H; y++ {
		rowChan <- y
	}
	close(rowChan)

	var wg sync.WaitGroup
	for w := p.workers(size.H); w > 0; w-- {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rowChan {
				rng := rand.New(rand.NewPCG(seed, mathutil.StreamKey(stage, uint32(y))))
				row := cells[y*size.W : (y+1)*size.W]
				for x := range row {
					row[x] = fn(Cell{X: x, Y: y, Rand: rng})
				}
			}
		}()
	}
	wg.Wait()
	return out, nil
}
