package session

import "github.com/vovakirdan/flappy-quest/internal/games/flappy"

// Pilot decides whether to flap before a tick.
type Pilot interface {
	ShouldFlap(w flappy.World, p flappy.Params) bool
}

// PilotFunc adapts a function to Pilot.
type PilotFunc func(w flappy.World, p flappy.Params) bool

// ShouldFlap implements Pilot.
func (f PilotFunc) ShouldFlap(w flappy.World, p flappy.Params) bool {
	return f(w, p)
}

// Autopilot flaps whenever the bird sinks toward the bottom of the next gap.
type Autopilot struct {
	// Slack is how far above the gap bottom the bird's bottom edge may sink
	// before flapping.
	Slack float64
}

// ShouldFlap implements Pilot.
func (a Autopilot) ShouldFlap(w flappy.World, p flappy.Params) bool {
	if w.Bird.Velocity < 0 {
		return false
	}
	slack := a.Slack
	if slack <= 0 {
		slack = p.BirdSize / 2
	}

	floor := p.FieldH/2 + p.BirdSize
	for _, o := range w.Obstacles {
		if o.Right(p.ObstacleWidth) >= w.Bird.X {
			floor = o.BottomY - slack
			break
		}
	}
	return w.Bird.Y+p.BirdSize >= floor
}
