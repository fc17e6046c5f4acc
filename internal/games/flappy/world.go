package flappy

import "github.com/vovakirdan/flappy-quest/internal/core"

// Bird is the player-controlled body. Y is the top of its square hitbox.
type Bird struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Velocity float64 `json:"velocity"`
}

// Rect returns the bird's collision rectangle.
func (b Bird) Rect(size float64) core.Rect {
	return core.NewRect(b.X, b.Y, size, size)
}

// World is the complete simulation state of one round.
// Obstacles are ordered leftmost-first.
type World struct {
	Bird      Bird
	Obstacles []Obstacle
	Score     int
	Ticks     int
}

// Clone returns a copy that shares no memory with w.
func (w World) Clone() World {
	out := w
	out.Obstacles = append([]Obstacle(nil), w.Obstacles...)
	return out
}

// Outcome reports what happened during one tick.
type Outcome struct {
	Collided bool // Terminal collision; the round is over
	Passed   int  // Obstacles scored this tick
	Spawned  bool // A new obstacle entered the field
}

// Engine advances worlds using fixed constants and an obstacle source.
type Engine struct {
	params Params
	source Source
}

// NewEngine creates an engine for one round.
func NewEngine(p Params, src Source) *Engine {
	return &Engine{params: p, source: src}
}

// Params returns the engine's constants.
func (e *Engine) Params() Params {
	return e.params
}

// NewWorld returns the starting state: bird at center height with zero
// velocity, no obstacles, zero score.
func (e *Engine) NewWorld() World {
	return World{
		Bird: Bird{
			X:        e.params.BirdX,
			Y:        e.params.FieldH / 2,
			Velocity: 0,
		},
		Obstacles: nil,
		Score:     0,
	}
}

// Flap sets the bird's velocity to the jump impulse, replacing whatever it
// held. Repeated flaps never accumulate.
func (e *Engine) Flap(w World) World {
	w.Bird.Velocity = e.params.JumpImpulse
	return w
}

// Step advances w by one tick and returns the new state. The input world is
// not modified.
func (e *Engine) Step(w World) (World, Outcome) {
	p := e.params
	next := w.Clone()
	var out Outcome

	next.Ticks++

	// Apply physics
	next.Bird.Velocity += p.Gravity
	next.Bird.Y += next.Bird.Velocity

	// Move obstacles left and drop the ones whose trailing edge left the field
	live := next.Obstacles[:0]
	for _, o := range next.Obstacles {
		o.X -= p.Speed
		if o.Right(p.ObstacleWidth) > 0 {
			live = append(live, o)
		}
	}
	next.Obstacles = live

	// Spawn a new obstacle once the newest one has scrolled past the threshold
	if len(next.Obstacles) == 0 || next.Obstacles[len(next.Obstacles)-1].X < p.FieldW-p.SpawnDistance {
		next.Obstacles = append(next.Obstacles, e.source.Next())
		out.Spawned = true
	}

	// Score obstacles whose trailing edge is behind the bird's leading edge
	for i := range next.Obstacles {
		o := &next.Obstacles[i]
		if !o.Passed && o.Right(p.ObstacleWidth) < next.Bird.X {
			o.Passed = true
			next.Score++
			out.Passed++
		}
	}

	out.Collided = Collides(next.Bird, next.Obstacles, p)
	return next, out
}

// OutOfBounds reports whether the bird touches the top or bottom of the field.
func OutOfBounds(b Bird, p Params) bool {
	return b.Y <= 0 || b.Y >= p.FieldH-p.BirdSize
}

// HitsObstacle reports whether the bird overlaps o horizontally without being
// fully inside its gap.
func HitsObstacle(b Bird, o Obstacle, p Params) bool {
	bird := b.Rect(p.BirdSize)
	column := core.NewRect(o.X, 0, p.ObstacleWidth, p.FieldH)
	if !bird.OverlapsX(column) {
		return false
	}
	return !bird.WithinY(o.TopHeight, o.BottomY)
}

// Collides reports a terminal collision with the field bounds or any obstacle.
func Collides(b Bird, obstacles []Obstacle, p Params) bool {
	if OutOfBounds(b, p) {
		return true
	}
	for _, o := range obstacles {
		if HitsObstacle(b, o, p) {
			return true
		}
	}
	return false
}
