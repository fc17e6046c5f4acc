package session

import (
	"context"
	"time"
)

// RunOptions configures a headless run.
type RunOptions struct {
	Games       int
	Pilot       Pilot         // nil never flaps
	MaxTicks    int           // Rounds longer than this are forfeited; 0 means no limit
	SettleDelay time.Duration // Pause between game-over and settlement
	OnSettled   func(Outcome)
}

// Summary aggregates a headless run.
type Summary struct {
	Games      int
	TotalScore int
	BestScore  int
	XPGained   int
	Ticks      int
}

// Run plays rounds without a terminal until opts.Games have settled or ctx is
// cancelled. On cancellation the current round is abandoned, any pending
// settlement is applied, and ctx.Err() is returned with the partial summary.
func Run(ctx context.Context, c *Controller, opts RunOptions) (Summary, error) {
	var sum Summary

	record := func(out Outcome) {
		sum.Games++
		sum.TotalScore += out.Score
		sum.BestScore = max(sum.BestScore, out.Score)
		sum.XPGained += out.Result.XPGained
		if opts.OnSettled != nil {
			opts.OnSettled(out)
		}
	}
	abort := func() (Summary, error) {
		if out, ok := c.Close(); ok {
			record(out)
		}
		return sum, ctx.Err()
	}

	for sum.Games < opts.Games {
		if ctx.Err() != nil {
			return abort()
		}

		gen, err := c.Start()
		if err != nil {
			return sum, err
		}

		var settlement Settlement
		for ticks := 0; ; ticks++ {
			if ctx.Err() != nil {
				return abort()
			}
			if opts.MaxTicks > 0 && ticks >= opts.MaxTicks {
				settlement, _ = c.Forfeit()
				break
			}
			if opts.Pilot != nil && opts.Pilot.ShouldFlap(c.world, c.params) {
				c.Jump()
			}
			res := c.Tick(gen)
			sum.Ticks++
			if res.GameOver {
				settlement = res.Settlement
				break
			}
		}

		if opts.SettleDelay > 0 {
			select {
			case <-ctx.Done():
				return abort()
			case <-time.After(opts.SettleDelay):
			}
		}
		if out, ok := c.Settle(settlement.Game); ok {
			record(out)
		}
	}

	return sum, nil
}
