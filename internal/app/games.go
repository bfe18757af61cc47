package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/golfbet/internal/adapters/mq/events"
	"github.com/okian/golfbet/internal/domain/game"
	"github.com/okian/golfbet/internal/domain/types"
	"github.com/okian/golfbet/pkg/logger"
	"github.com/okian/golfbet/pkg/metrics"
)

// settingsFor fills the zero fields of req with the service defaults.
func (s *Service) settingsFor(req types.NewGame) game.Settings {
	st := req.Settings
	if st.PlayerCount == 0 {
		st.PlayerCount = max(s.defaults.PlayerCount, len(req.Players))
	}
	if st.HoleCount == 0 {
		st.HoleCount = s.defaults.HoleCount
	}
	if st.Mode == "" {
		st.Mode = s.defaults.Mode
	}
	if st.Scoring == "" {
		st.Scoring = s.defaults.Scoring
	}
	return st
}

// CreateGame builds a round with its players and voor and registers it. Nothing
// is registered when any step fails.
func (s *Service) CreateGame(ctx context.Context, req types.NewGame) (types.GameView, error) {
	store, _, err := s.components()
	if err != nil {
		return types.GameView{}, err
	}

	g, err := game.New(s.settingsFor(req))
	if err != nil {
		return types.GameView{}, err
	}
	for _, p := range req.Players {
		if err := g.AddPlayer(p); err != nil {
			return types.GameView{}, err
		}
	}
	for _, v := range req.Voor {
		if err := g.SetVoorAdjustment(v.From, v.To, v.Strokes); err != nil {
			return types.GameView{}, err
		}
	}

	id, err := store.Create(ctx, g)
	if err != nil {
		metrics.RecordErrorByComponent("service", "create_game")
		return types.GameView{}, err
	}
	metrics.RecordGameCreated()
	s.logger.Info(ctx, "game created",
		logger.String("game_id", id),
		logger.String("mode", string(g.Settings().Mode)),
		logger.Int("players", len(req.Players)),
	)

	var view types.GameView
	err = store.View(ctx, id, func(g *game.Game) error {
		view = types.NewGameView(id, g)
		return nil
	})
	return view, err
}

// Game returns the round summary.
func (s *Service) Game(ctx context.Context, id string) (types.GameView, error) {
	store, _, err := s.components()
	if err != nil {
		return types.GameView{}, err
	}
	var view types.GameView
	err = store.View(ctx, id, func(g *game.Game) error {
		view = types.NewGameView(id, g)
		return nil
	})
	return view, err
}

// DeleteGame drops a round from the registry.
func (s *Service) DeleteGame(ctx context.Context, id string) error {
	store, _, err := s.components()
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordGameDeleted()
	s.logger.Info(ctx, "game deleted", logger.String("game_id", id))
	return nil
}

// AddPlayer registers a player on a round.
func (s *Service) AddPlayer(ctx context.Context, id, name string) (types.GameView, error) {
	return s.updateGame(ctx, id, func(g *game.Game) error {
		return g.AddPlayer(name)
	})
}

// SetVoor records a standing handicap between two players.
func (s *Service) SetVoor(ctx context.Context, id string, v types.Voor) (types.GameView, error) {
	return s.updateGame(ctx, id, func(g *game.Game) error {
		return g.SetVoorAdjustment(v.From, v.To, v.Strokes)
	})
}

// AdvanceHole moves the round's hole cursor forward.
func (s *Service) AdvanceHole(ctx context.Context, id string) (types.GameView, error) {
	return s.updateGame(ctx, id, func(g *game.Game) error {
		next, finished, err := g.AdvanceHole()
		if err != nil {
			return err
		}
		s.logger.Debug(ctx, "hole advanced",
			logger.String("game_id", id),
			logger.Int("hole", next),
			logger.Bool("finished", finished),
		)
		return nil
	})
}

// SettleRound recomputes every hole and nets the result into the final payments.
func (s *Service) SettleRound(ctx context.Context, id string) (types.GameView, error) {
	start := time.Now()
	view, err := s.updateGame(ctx, id, func(g *game.Game) error {
		_, err := g.CalculateAllPayments()
		return err
	})
	if err != nil {
		return types.GameView{}, err
	}
	metrics.RecordRoundSettled(len(view.Settlement), float64(time.Since(start).Microseconds())/1000)

	s.publish(ctx, func(p *events.Publisher) error {
		return p.PublishRoundSettled(ctx, events.RoundSettled{GameID: id, Transfers: view.Settlement})
	})
	return view, nil
}

// PlayerTotals returns a player's raw and adjusted totals and net position in
// the last computed settlement.
func (s *Service) PlayerTotals(ctx context.Context, id, player string) (types.PlayerTotals, error) {
	store, _, err := s.components()
	if err != nil {
		return types.PlayerTotals{}, err
	}
	var out types.PlayerTotals
	err = store.View(ctx, id, func(g *game.Game) error {
		total, ok := g.TotalScore(player)
		if !ok {
			return fmt.Errorf("%w: %q", game.ErrUnknownPlayer, player)
		}
		adjusted, _ := g.AdjustedTotalScore(player)
		out = types.PlayerTotals{
			Player:        player,
			Total:         total,
			AdjustedTotal: adjusted,
			Display:       types.ScoreText(total, adjusted, true),
			Net:           g.FinalPayments().Balances()[player],
		}
		return nil
	})
	return out, err
}

// Scorecard returns the round state for exports, using the hole payments and
// settlement last computed. It never recalculates.
func (s *Service) Scorecard(ctx context.Context, id string) (types.Scorecard, error) {
	store, _, err := s.components()
	if err != nil {
		return types.Scorecard{}, err
	}
	var sc types.Scorecard
	err = store.View(ctx, id, func(g *game.Game) error {
		sc = types.NewScorecard(id, g)
		return nil
	})
	return sc, err
}

// updateGame applies fn and returns the resulting view in one transaction.
func (s *Service) updateGame(ctx context.Context, id string, fn func(*game.Game) error) (types.GameView, error) {
	store, _, err := s.components()
	if err != nil {
		return types.GameView{}, err
	}
	var view types.GameView
	err = store.Update(ctx, id, func(g *game.Game) error {
		if err := fn(g); err != nil {
			return err
		}
		view = types.NewGameView(id, g)
		return nil
	})
	return view, err
}

// publish emits an event after the round's lock is released. Failures are
// logged; the operation that triggered them has already succeeded.
func (s *Service) publish(ctx context.Context, fn func(*events.Publisher) error) {
	_, pub, err := s.components()
	if err != nil {
		return
	}
	if err := fn(pub); err != nil {
		s.logger.Warn(ctx, "event not published", logger.Error(err))
	}
}
