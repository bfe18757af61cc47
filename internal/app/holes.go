package service

import (
	"context"
	"fmt"

	"github.com/okian/golfbet/internal/adapters/mq/events"
	"github.com/okian/golfbet/internal/domain/game"
	"github.com/okian/golfbet/internal/domain/types"
	"github.com/okian/golfbet/pkg/logger"
	"github.com/okian/golfbet/pkg/metrics"
)

const (
	reasonIncomplete = "incomplete"
	reasonNoWinner   = "no_winner"
)

// AddHole creates a hole with its stake and par.
func (s *Service) AddHole(ctx context.Context, id string, number int, value float64, par int) (types.HoleView, error) {
	return s.updateHole(ctx, id, number, func(g *game.Game) error {
		return g.AddHole(number, value, par)
	})
}

// Hole returns the current state of a hole.
func (s *Service) Hole(ctx context.Context, id string, number int) (types.HoleView, error) {
	store, _, err := s.components()
	if err != nil {
		return types.HoleView{}, err
	}
	var view types.HoleView
	err = store.View(ctx, id, func(g *game.Game) error {
		v, ok := types.NewHoleView(g, number)
		if !ok {
			return fmt.Errorf("%w: %d", game.ErrUnknownHole, number)
		}
		view = v
		return nil
	})
	return view, err
}

// SetScores records a batch of scores on a hole. Either every entry is applied
// or none is.
func (s *Service) SetScores(ctx context.Context, id string, number int, entries []types.ScoreEntry) (types.HoleView, error) {
	return s.updateHole(ctx, id, number, func(g *game.Game) error {
		for _, e := range entries {
			if err := checkEntry(g, number, e.Player); err != nil {
				return err
			}
			if e.Score < game.MinStrokes || e.Score > game.MaxStrokes {
				return fmt.Errorf("%w: %d outside [%d,%d]", game.ErrInvalidScore, e.Score, game.MinStrokes, game.MaxStrokes)
			}
		}
		for _, e := range entries {
			if err := g.SetPlayerScore(number, e.Player, e.Score); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetBuchi records a batch of side bet entries on a hole. Either every entry is
// applied or none is.
func (s *Service) SetBuchi(ctx context.Context, id string, number int, entries []types.BuchiEntry) (types.HoleView, error) {
	return s.updateHole(ctx, id, number, func(g *game.Game) error {
		if !g.Settings().BuchiEnabled {
			return game.ErrBuchiDisabled
		}
		for _, e := range entries {
			if err := checkEntry(g, number, e.Player); err != nil {
				return err
			}
		}
		for _, e := range entries {
			if err := g.SetBuchiParticipation(number, e.Player, e.Participates || e.Won); err != nil {
				return err
			}
			if err := g.SetBuchiWin(number, e.Player, e.Won); err != nil {
				return err
			}
		}
		return nil
	})
}

// SettleHole recomputes a hole's payments and publishes the result.
func (s *Service) SettleHole(ctx context.Context, id string, number int) (types.HoleView, error) {
	var (
		mode     game.GameMode
		complete bool
	)
	view, err := s.updateHole(ctx, id, number, func(g *game.Game) error {
		if _, err := g.CalculatePaymentsForHole(number); err != nil {
			return err
		}
		mode = g.Settings().Mode
		complete = true
		for _, p := range g.Players() {
			if _, ok := g.PlayerScore(number, p); !ok {
				complete = false
				break
			}
		}
		return nil
	})
	if err != nil {
		return types.HoleView{}, err
	}

	var volume float64
	for _, p := range view.Payments {
		volume += p.Amount
	}
	metrics.RecordHoleSettled(string(mode), len(view.Payments), volume)
	switch {
	case len(view.Payments) > 0:
	case !complete:
		metrics.RecordHoleWithoutPayment(reasonIncomplete)
	default:
		metrics.RecordHoleWithoutPayment(reasonNoWinner)
	}
	s.logger.Debug(ctx, "hole settled",
		logger.String("game_id", id),
		logger.Int("hole", number),
		logger.Int("payments", len(view.Payments)),
		logger.Float64("volume", volume),
	)

	s.publish(ctx, func(p *events.Publisher) error {
		return p.PublishHoleSettled(ctx, events.HoleSettled{
			GameID:   id,
			Hole:     number,
			Mode:     string(mode),
			Payments: view.Payments,
		})
	})
	return view, nil
}

func checkEntry(g *game.Game, hole int, player string) error {
	if _, ok := g.HolePar(hole); !ok {
		return fmt.Errorf("%w: %d", game.ErrUnknownHole, hole)
	}
	if _, ok := g.TotalScore(player); !ok {
		return fmt.Errorf("%w: %q", game.ErrUnknownPlayer, player)
	}
	return nil
}

func (s *Service) updateHole(ctx context.Context, id string, number int, fn func(*game.Game) error) (types.HoleView, error) {
	store, _, err := s.components()
	if err != nil {
		return types.HoleView{}, err
	}
	var view types.HoleView
	err = store.Update(ctx, id, func(g *game.Game) error {
		if err := fn(g); err != nil {
			return err
		}
		view, _ = types.NewHoleView(g, number)
		return nil
	})
	return view, err
}
