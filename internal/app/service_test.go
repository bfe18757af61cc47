package service

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/golfbet/internal/adapters/repository"
	"github.com/okian/golfbet/internal/domain/game"
	"github.com/okian/golfbet/internal/domain/ledger"
	"github.com/okian/golfbet/internal/domain/types"
	"github.com/okian/golfbet/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func startService(opts ...Option) *Service {
	s := New(opts...)
	So(s.Start(context.Background()), ShouldBeNil)
	return s
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		s := New(WithMaxGames(5), WithEventBuffer(8))

		Convey("When it is used before Start", func() {
			_, err := s.Game(context.Background(), "x")

			Convey("Then ErrNotStarted is returned", func() {
				So(errors.Is(err, ErrNotStarted), ShouldBeTrue)
				So(s.GameCount(), ShouldEqual, 0)
				So(s.GetStats()["started"], ShouldEqual, false)
			})
		})

		Convey("When it is started and stopped", func() {
			So(s.Start(context.Background()), ShouldBeNil)
			So(s.Start(context.Background()), ShouldBeNil)

			stats := s.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["maxGames"], ShouldEqual, 5)
			So(stats["games"], ShouldEqual, 0)

			s.Stop()
			s.Stop()
			So(s.GetStats()["started"], ShouldEqual, false)
		})

		Convey("When invalid default settings are passed", func() {
			bad := game.DefaultSettings()
			bad.HoleCount = 0
			s := New(WithDefaultSettings(bad))

			Convey("Then the built-in defaults are kept", func() {
				So(s.defaults, ShouldResemble, game.DefaultSettings())
			})
		})
	})
}

func TestCreateGame(t *testing.T) {
	Convey("Given a started service", t, func() {
		s := startService(WithMaxGames(1))
		defer s.Stop()
		ctx := context.Background()

		Convey("When a round is created with players and voor", func() {
			view, err := s.CreateGame(ctx, types.NewGame{
				Settings: game.Settings{VoorEnabled: true},
				Players:  []string{"Ann", "Bo", "Cy"},
				Voor:     []types.Voor{{From: "Ann", To: "Bo", Strokes: 1}},
			})
			So(err, ShouldBeNil)

			Convey("Then defaults fill the unset fields", func() {
				So(view.ID, ShouldNotBeEmpty)
				So(view.Settings.PlayerCount, ShouldEqual, 3)
				So(view.Settings.HoleCount, ShouldEqual, 9)
				So(view.Settings.Mode, ShouldEqual, game.SingleWinner)
				So(view.Settings.Scoring, ShouldEqual, game.ParScoring)
				So(view.Players, ShouldResemble, []string{"Ann", "Bo", "Cy"})
				So(view.Voor, ShouldResemble, []types.Voor{{From: "Ann", To: "Bo", Strokes: 1}})
				So(view.CurrentHole, ShouldEqual, 1)
			})

			Convey("Then the registry capacity is enforced", func() {
				_, err := s.CreateGame(ctx, types.NewGame{Players: []string{"Di", "Ed"}})
				So(errors.Is(err, repository.ErrCapacity), ShouldBeTrue)
			})

			Convey("Then deleting it frees the slot", func() {
				So(s.DeleteGame(ctx, view.ID), ShouldBeNil)
				So(s.GameCount(), ShouldEqual, 0)
				_, err := s.Game(ctx, view.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a step of the creation fails", func() {
			_, err := s.CreateGame(ctx, types.NewGame{
				Players: []string{"Ann", "Bo"},
				Voor:    []types.Voor{{From: "Ann", To: "Bo", Strokes: 1}},
			})

			Convey("Then nothing is registered", func() {
				So(errors.Is(err, game.ErrVoorDisabled), ShouldBeTrue)
				So(s.GameCount(), ShouldEqual, 0)
			})
		})

		Convey("When the settings are invalid", func() {
			_, err := s.CreateGame(ctx, types.NewGame{Settings: game.Settings{Mode: "skins"}})
			So(errors.Is(err, game.ErrInvalidSettings), ShouldBeTrue)
		})
	})
}

func TestPlayRound(t *testing.T) {
	Convey("Given a three player round", t, func() {
		s := startService()
		defer s.Stop()
		ctx := context.Background()

		view, err := s.CreateGame(ctx, types.NewGame{
			Settings: game.Settings{HoleCount: 2, BuchiEnabled: true},
			Players:  []string{"A", "B", "C"},
		})
		So(err, ShouldBeNil)
		id := view.ID

		_, err = s.AddHole(ctx, id, 1, 10, 4)
		So(err, ShouldBeNil)
		_, err = s.AddHole(ctx, id, 2, 10, 4)
		So(err, ShouldBeNil)

		Convey("When a batch contains an unknown player", func() {
			_, err := s.SetScores(ctx, id, 1, []types.ScoreEntry{
				{Player: "A", Score: 3},
				{Player: "Z", Score: 4},
			})

			Convey("Then no score of the batch is recorded", func() {
				So(errors.Is(err, game.ErrUnknownPlayer), ShouldBeTrue)
				hole, err := s.Hole(ctx, id, 1)
				So(err, ShouldBeNil)
				for _, sc := range hole.Scores {
					So(sc.Scored, ShouldBeFalse)
				}
			})
		})

		Convey("When a batch contains an invalid score", func() {
			_, err := s.SetScores(ctx, id, 1, []types.ScoreEntry{
				{Player: "A", Score: 3},
				{Player: "B", Score: 0},
			})
			So(errors.Is(err, game.ErrInvalidScore), ShouldBeTrue)
		})

		Convey("When a hole is settled before every score is in", func() {
			_, err := s.SetScores(ctx, id, 1, []types.ScoreEntry{{Player: "A", Score: 3}})
			So(err, ShouldBeNil)
			hole, err := s.SettleHole(ctx, id, 1)

			Convey("Then the missing scores leave the hole unpaid", func() {
				So(err, ShouldBeNil)
				So(hole.Payments, ShouldBeEmpty)
			})
		})

		Convey("When both holes are played and settled", func() {
			_, err := s.SetScores(ctx, id, 1, []types.ScoreEntry{
				{Player: "A", Score: 3}, {Player: "B", Score: 5}, {Player: "C", Score: 5},
			})
			So(err, ShouldBeNil)
			_, err = s.SetScores(ctx, id, 2, []types.ScoreEntry{
				{Player: "A", Score: 5}, {Player: "B", Score: 4}, {Player: "C", Score: 5},
			})
			So(err, ShouldBeNil)
			_, err = s.SetBuchi(ctx, id, 2, []types.BuchiEntry{
				{Player: "A", Participates: true}, {Player: "C", Won: true},
			})
			So(err, ShouldBeNil)

			h1, err := s.SettleHole(ctx, id, 1)
			So(err, ShouldBeNil)
			h2, err := s.SettleHole(ctx, id, 2)
			So(err, ShouldBeNil)

			Convey("Then each hole holds its own payments", func() {
				So(h1.Payments, ShouldResemble, []ledger.Transfer{
					{From: "B", To: "A", Amount: 20},
					{From: "C", To: "A", Amount: 20},
				})
				So(h2.BuchiWinners, ShouldResemble, []string{"C"})
				So(h2.Payments, ShouldContain, ledger.Transfer{From: "A", To: "C", Amount: 10})
			})

			Convey("Then the round settles into one direction per pair", func() {
				round, err := s.SettleRound(ctx, id)
				So(err, ShouldBeNil)
				for _, tr := range round.Settlement {
					So(tr.Amount, ShouldBeGreaterThan, 0)
					for _, other := range round.Settlement {
						So(other.From == tr.To && other.To == tr.From, ShouldBeFalse)
					}
				}

				totals, err := s.PlayerTotals(ctx, id, "A")
				So(err, ShouldBeNil)
				So(totals.Total, ShouldEqual, 8)
				So(totals.Display, ShouldEqual, "8")
			})

			Convey("Then settlement events reach the consumer", func() {
				_, err := s.SettleRound(ctx, id)
				So(err, ShouldBeNil)
				So(eventually(func() bool {
					return s.holeEvents.Load() >= 2 && s.roundEvents.Load() >= 1
				}), ShouldBeTrue)
			})

			Convey("Then the scorecard carries running balances", func() {
				sc, err := s.Scorecard(ctx, id)
				So(err, ShouldBeNil)
				So(sc.Holes, ShouldHaveLength, 2)
				So(sc.Running["A"], ShouldHaveLength, 2)
				So(sc.Running["A"][0], ShouldEqual, 40)

				Convey("And reading it does not settle the round", func() {
					So(sc.Settlement, ShouldBeEmpty)
					totals, err := s.PlayerTotals(ctx, id, "A")
					So(err, ShouldBeNil)
					So(totals.Net, ShouldEqual, 0)
				})

				Convey("And after settling it carries the settlement", func() {
					_, err := s.SettleRound(ctx, id)
					So(err, ShouldBeNil)
					sc, err := s.Scorecard(ctx, id)
					So(err, ShouldBeNil)
					So(sc.Settlement, ShouldNotBeEmpty)
					var sum float64
					for _, t := range sc.Totals {
						sum += t.Net
					}
					So(sum, ShouldAlmostEqual, 0, 1e-9)
				})
			})
		})

		Convey("When the cursor runs past the last hole", func() {
			v, err := s.AdvanceHole(ctx, id)
			So(err, ShouldBeNil)
			So(v.CurrentHole, ShouldEqual, 2)
			v, err = s.AdvanceHole(ctx, id)
			So(err, ShouldBeNil)
			So(v.Finished, ShouldBeTrue)
			_, err = s.AdvanceHole(ctx, id)
			So(errors.Is(err, game.ErrRoundComplete), ShouldBeTrue)
		})

		Convey("When an unknown hole or player is queried", func() {
			_, err := s.Hole(ctx, id, 7)
			So(errors.Is(err, game.ErrUnknownHole), ShouldBeTrue)
			_, err = s.PlayerTotals(ctx, id, "Z")
			So(errors.Is(err, game.ErrUnknownPlayer), ShouldBeTrue)
		})
	})
}

func TestVoorUpdates(t *testing.T) {
	Convey("Given a round with voor enabled", t, func() {
		s := startService()
		defer s.Stop()
		ctx := context.Background()

		view, err := s.CreateGame(ctx, types.NewGame{
			Settings: game.Settings{VoorEnabled: true},
			Players:  []string{"A"},
		})
		So(err, ShouldBeNil)

		Convey("When a player joins and receives strokes", func() {
			_, err := s.AddPlayer(ctx, view.ID, "B")
			So(err, ShouldBeNil)
			v, err := s.SetVoor(ctx, view.ID, types.Voor{From: "A", To: "B", Strokes: 2})
			So(err, ShouldBeNil)
			So(v.Voor, ShouldResemble, []types.Voor{{From: "A", To: "B", Strokes: 2}})

			Convey("Then zero strokes removes the adjustment", func() {
				v, err := s.SetVoor(ctx, view.ID, types.Voor{From: "A", To: "B"})
				So(err, ShouldBeNil)
				So(v.Voor, ShouldBeEmpty)
			})
		})
	})
}
