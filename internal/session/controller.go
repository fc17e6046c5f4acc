// Package session orchestrates one player's rounds: the menu, playing and
// game-over states, the tick loop that drives the physics engine, and the
// deferred settlement that hands each finished round to progression and
// the leaderboard exactly once.
//
// The package schedules nothing itself. Hosts call Tick on their own cadence
// and Settle after their own delay; both are keyed so late calls are no-ops.
package session

import (
	"errors"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-quest/internal/games/flappy"
	"github.com/vovakirdan/flappy-quest/internal/progression"
)

// State is the controller's phase.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// ErrAlreadyPlaying is returned by Start during a round.
var ErrAlreadyPlaying = errors.New("session: round already in progress")

// Progression receives settled rounds.
type Progression interface {
	CompleteGame(score int) progression.GameResult
	PlayerName() string
	Level() int
}

// Leaderboard receives score submissions.
type Leaderboard interface {
	Submit(name string, score, level int) (rank int, ok bool, err error)
}

// SourceFactory builds the obstacle stream for one round.
type SourceFactory func(p flappy.Params, seed int64) (flappy.Source, error)

// Options configures a Controller.
type Options struct {
	Params      flappy.Params
	Progression Progression
	Leaderboard Leaderboard // Optional
	Seed        int64       // 0 picks a time-based seed
	NewSource   SourceFactory
	Logger      *log.Logger
}

// Settlement identifies a finished round awaiting its deferred effects.
type Settlement struct {
	Game  int
	Score int
}

// Outcome is what settling a round produced.
type Outcome struct {
	Settlement
	Result    progression.GameResult
	Submitted bool
	Rank      int
	Ranked    bool
}

// TickResult reports what a Tick did.
type TickResult struct {
	Stale      bool // The tick belonged to a stopped generation and was ignored
	Passed     int
	GameOver   bool
	Settlement Settlement // Valid when GameOver
}

// Snapshot is the read-only view handed to renderers.
type Snapshot struct {
	State State
	World flappy.World
	Game  int
}

// Controller runs rounds for a single player. It is not safe for concurrent
// use; hosts drive it from one goroutine.
type Controller struct {
	params    flappy.Params
	prog      Progression
	board     Leaderboard
	newSource SourceFactory
	rng       *rand.Rand
	logger    *log.Logger

	loop    Loop
	state   State
	engine  *flappy.Engine
	world   flappy.World
	game    int
	pending *Settlement
	last    *Outcome
}

// NewController validates the round constants and returns a controller in
// the menu state.
func NewController(opts Options) (*Controller, error) {
	if opts.NewSource == nil {
		opts.NewSource = func(p flappy.Params, seed int64) (flappy.Source, error) {
			return flappy.NewGenerator(p, seed)
		}
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Progression == nil {
		return nil, errors.New("session: progression is required")
	}

	// Fail now rather than on the first Start
	if _, err := opts.NewSource(opts.Params, opts.Seed); err != nil {
		return nil, err
	}

	c := &Controller{
		params:    opts.Params,
		prog:      opts.Progression,
		board:     opts.Leaderboard,
		newSource: opts.NewSource,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		logger:    opts.Logger,
		state:     StateMenu,
	}
	c.engine = flappy.NewEngine(c.params, nil)
	c.world = c.engine.NewWorld()
	return c, nil
}

// State returns the current phase.
func (c *Controller) State() State {
	return c.state
}

// Params returns the round constants.
func (c *Controller) Params() flappy.Params {
	return c.params
}

// Game returns the number of the current or most recent round.
func (c *Controller) Game() int {
	return c.game
}

// Generation returns the tick generation of the active round.
func (c *Controller) Generation() uint64 {
	return c.loop.Gen()
}

// Snapshot returns the state to draw this frame.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{State: c.state, World: c.world.Clone(), Game: c.game}
}

// LastOutcome returns the most recent settlement, if any.
func (c *Controller) LastOutcome() (Outcome, bool) {
	if c.last == nil {
		return Outcome{}, false
	}
	return *c.last, true
}

// Pending returns the round awaiting settlement, if any.
func (c *Controller) Pending() (Settlement, bool) {
	if c.pending == nil {
		return Settlement{}, false
	}
	return *c.pending, true
}

// Start begins a new round from the menu or game-over state and returns the
// tick generation to schedule under. A previous round still awaiting its
// deferred settlement is settled first.
func (c *Controller) Start() (uint64, error) {
	if c.state == StatePlaying {
		return 0, ErrAlreadyPlaying
	}
	if c.pending != nil {
		c.Settle(c.pending.Game)
	}

	src, err := c.newSource(c.params, c.rng.Int63())
	if err != nil {
		return 0, err
	}
	c.engine = flappy.NewEngine(c.params, src)
	c.world = c.engine.NewWorld()
	c.game++
	c.state = StatePlaying

	gen := c.loop.Start()
	c.logger.Debug("round started", "game", c.game, "gen", gen)
	return gen, nil
}

// Jump flaps the bird. It is ignored outside the playing state.
func (c *Controller) Jump() bool {
	if c.state != StatePlaying {
		return false
	}
	c.world = c.engine.Flap(c.world)
	return true
}

// Tick advances the round by one step if gen is the active generation.
// A terminal collision moves to game-over, stops the loop and leaves a
// settlement pending.
func (c *Controller) Tick(gen uint64) TickResult {
	if c.state != StatePlaying || !c.loop.Accept(gen) {
		return TickResult{Stale: true}
	}

	next, out := c.engine.Step(c.world)
	c.world = next

	res := TickResult{Passed: out.Passed}
	if out.Collided {
		res.GameOver = true
		res.Settlement = c.end()
	}
	return res
}

// Forfeit ends the active round as if it had collided.
func (c *Controller) Forfeit() (Settlement, bool) {
	if c.state != StatePlaying {
		return Settlement{}, false
	}
	return c.end(), true
}

func (c *Controller) end() Settlement {
	c.state = StateGameOver
	c.loop.Stop()
	s := Settlement{Game: c.game, Score: c.world.Score}
	c.pending = &s
	c.logger.Debug("round over", "game", s.Game, "score", s.Score)
	return s
}

// Settle applies the deferred effects of round game. It runs at most once per
// round; calls for any other round, or repeated calls, report false.
func (c *Controller) Settle(game int) (Outcome, bool) {
	if c.pending == nil || c.pending.Game != game {
		return Outcome{}, false
	}
	s := *c.pending
	c.pending = nil

	out := Outcome{Settlement: s}
	out.Result = c.prog.CompleteGame(s.Score)

	name := c.prog.PlayerName()
	if c.board != nil && name != "" && s.Score > 0 {
		rank, ok, err := c.board.Submit(name, s.Score, c.prog.Level())
		if err != nil {
			c.logger.Warn("leaderboard submission rejected", "err", err)
		} else {
			out.Submitted = true
			out.Rank, out.Ranked = rank, ok
		}
	}

	c.last = &out
	return out, true
}

// Menu returns to the menu from game-over. A pending settlement stays
// pending and is still applied by its deferred Settle or the next Start.
func (c *Controller) Menu() bool {
	if c.state != StateGameOver {
		return false
	}
	c.state = StateMenu
	return true
}

// Close stops the loop and applies any pending settlement. An unfinished
// round is abandoned without effects.
func (c *Controller) Close() (Outcome, bool) {
	c.loop.Stop()
	if c.state == StatePlaying {
		c.state = StateMenu
	}
	if c.pending == nil {
		return Outcome{}, false
	}
	return c.Settle(c.pending.Game)
}
