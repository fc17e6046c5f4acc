package flappy

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/flappy-quest/internal/core"
)

// Obstacle is a pair of barriers with a passable gap between them.
type Obstacle struct {
	X         float64 `json:"x"`         // Horizontal position (left edge)
	TopHeight float64 `json:"topHeight"` // Height of the top barrier (top of gap)
	BottomY   float64 `json:"bottomY"`   // Where the bottom barrier starts (bottom of gap)
	Passed    bool    `json:"passed"`    // Whether the bird has scored this obstacle
}

// Right returns the trailing edge of the obstacle.
func (o Obstacle) Right(width float64) float64 {
	return o.X + width
}

// TopRect returns the collision rectangle for the top barrier.
func (o Obstacle) TopRect(width float64) core.Rect {
	return core.NewRect(o.X, 0, width, o.TopHeight)
}

// BottomRect returns the collision rectangle for the bottom barrier.
func (o Obstacle) BottomRect(width, fieldH float64) core.Rect {
	return core.NewRect(o.X, o.BottomY, width, fieldH-o.BottomY)
}

// Source yields obstacles one at a time, forever.
type Source interface {
	Next() Obstacle
}

// Generator produces obstacles at the right edge of the field with a
// uniformly random gap placement. It is not restartable; every call to Next
// draws a fresh placement.
type Generator struct {
	rng    *rand.Rand
	fieldW float64
	gap    float64
	minTop float64
	maxTop float64
}

// NewGenerator creates a generator for the given constants.
// It fails when the gap plus both margins cannot fit inside the field, which
// is the only way a placement could leave the gap partly off-field.
func NewGenerator(p Params, seed int64) (*Generator, error) {
	minTop := p.MinMargin
	maxTop := p.FieldH - p.Gap - p.MinMargin
	if maxTop < minTop {
		return nil, fmt.Errorf("flappy: gap %g with margin %g does not fit field height %g", p.Gap, p.MinMargin, p.FieldH)
	}

	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		fieldW: p.FieldW,
		gap:    p.Gap,
		minTop: minTop,
		maxTop: maxTop,
	}, nil
}

// Next returns a new obstacle at the right edge of the field.
func (g *Generator) Next() Obstacle {
	top := g.minTop + g.rng.Float64()*(g.maxTop-g.minTop)
	return Obstacle{
		X:         g.fieldW,
		TopHeight: top,
		BottomY:   top + g.gap,
		Passed:    false,
	}
}
