package roundsim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/golfbet/internal/domain/types"
	"github.com/okian/golfbet/pkg/logger"
)

// ErrRoundsFailed is returned when at least one round failed to play or verify.
var ErrRoundsFailed = errors.New("simulated rounds failed")

// RoundResult is the outcome of one simulated round.
type RoundResult struct {
	GameID    string
	Players   int
	Holes     int
	Payments  int
	Transfers int
	Volume    float64
	Duration  time.Duration
	Err       error
}

// Run plays cfg.Rounds generated rounds against the service, verifies each
// settlement and writes a summary to out.
func Run(ctx context.Context, cfg *Config, out io.Writer) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	log := logger.Named("roundsim")
	log.Info(ctx, "starting round simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("rounds", cfg.Rounds),
		logger.Int("players", cfg.Players),
		logger.Int("holes", cfg.Holes),
		logger.String("mode", cfg.Mode),
		logger.Int("concurrency", cfg.Concurrency),
		logger.Any("seed", seed),
	)

	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	// Plans are generated up front so a seed always yields the same rounds.
	gen := NewGenerator(seed)
	plans := make([]RoundPlan, cfg.Rounds)
	for i := range plans {
		plans[i] = gen.Round(cfg)
	}

	report := &Report{Seed: seed, Results: make([]RoundResult, len(plans))}
	start := time.Now()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, plan := range plans {
		g.Go(func() error {
			res := playRound(gctx, client, cfg, plan)
			if cfg.Verbose || res.Err != nil {
				fields := []logger.Field{
					logger.String("game_id", res.GameID),
					logger.Int("transfers", res.Transfers),
					logger.Float64("volume", res.Volume),
				}
				if res.Err != nil {
					log.Warn(gctx, "round failed", append(fields, logger.Error(res.Err))...)
				} else {
					log.Info(gctx, "round verified", fields...)
				}
			}
			mu.Lock()
			report.Results[i] = res
			mu.Unlock()
			// a failed round does not stop the others
			return nil
		})
	}
	_ = g.Wait()
	report.Duration = time.Since(start)

	if out != nil {
		_, _ = io.WriteString(out, report.Render())
	}
	if n := report.Failed(); n > 0 {
		return report, fmt.Errorf("%w: %d of %d", ErrRoundsFailed, n, len(report.Results))
	}
	log.Info(ctx, "simulation completed", logger.String("duration", report.Duration.String()))
	return report, nil
}

// playRound creates the round, plays every hole, settles and verifies it, then
// removes it from the registry.
func playRound(ctx context.Context, c *Client, cfg *Config, plan RoundPlan) RoundResult {
	start := time.Now()
	res := RoundResult{Players: len(plan.Players), Holes: len(plan.Holes)}
	fail := func(err error) RoundResult {
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}

	view, err := c.CreateGame(ctx, cfg, plan)
	if err != nil {
		return fail(err)
	}
	res.GameID = view.ID
	defer func() { _ = c.DeleteGame(context.WithoutCancel(ctx), view.ID) }()

	holes := make([]types.HoleView, 0, len(plan.Holes))
	for _, h := range plan.Holes {
		if err := c.AddHole(ctx, view.ID, h); err != nil {
			return fail(err)
		}
		if err := c.SetScores(ctx, view.ID, h.Number, h.Scores); err != nil {
			return fail(err)
		}
		if len(h.Buchi) > 0 {
			if err := c.SetBuchi(ctx, view.ID, h.Number, h.Buchi); err != nil {
				return fail(err)
			}
		}
		hv, err := c.SettleHole(ctx, view.ID, h.Number)
		if err != nil {
			return fail(err)
		}
		if err := c.AdvanceHole(ctx, view.ID); err != nil {
			return fail(err)
		}
		holes = append(holes, hv)
		res.Payments += len(hv.Payments)
		for _, p := range hv.Payments {
			res.Volume += p.Amount
		}
	}

	settled, err := c.SettleRound(ctx, view.ID)
	if err != nil {
		return fail(err)
	}
	if !settled.Finished {
		return fail(fmt.Errorf("%w: round %s not finished after its last hole", ErrVerification, view.ID))
	}
	res.Transfers = len(settled.Settlement)
	if err := Verify(holes, settled.Settlement); err != nil {
		return fail(err)
	}
	res.Duration = time.Since(start)
	return res
}
