package game_test

import (
	"errors"
	"testing"

	"github.com/okian/golfbet/internal/domain/game"
	. "github.com/smartystreets/goconvey/convey"
)

func newRound(t *testing.T, s game.Settings, players ...string) *game.Game {
	t.Helper()
	g, err := game.New(s)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	for _, p := range players {
		if err := g.AddPlayer(p); err != nil {
			t.Fatalf("add player %s: %v", p, err)
		}
	}
	return g
}

func settings(players int, mode game.GameMode, scoring game.ScoringType) game.Settings {
	return game.Settings{PlayerCount: players, HoleCount: 9, Mode: mode, Scoring: scoring}
}

func TestSettings_Validate(t *testing.T) {
	Convey("Given round settings", t, func() {
		Convey("When they are within bounds", func() {
			So(game.DefaultSettings().Validate(), ShouldBeNil)
			So(settings(10, game.FaceToFace, game.BogeyScoring).Validate(), ShouldBeNil)
		})

		Convey("When the player count is out of range", func() {
			for _, n := range []int{0, 1, 11} {
				err := settings(n, game.SingleWinner, game.ParScoring).Validate()
				So(errors.Is(err, game.ErrInvalidSettings), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "player count")
			}
		})

		Convey("When the hole count is out of range", func() {
			s := game.DefaultSettings()
			s.HoleCount = 19
			So(errors.Is(s.Validate(), game.ErrInvalidSettings), ShouldBeTrue)
			s.HoleCount = 0
			So(errors.Is(s.Validate(), game.ErrInvalidSettings), ShouldBeTrue)
		})

		Convey("When mode or scoring is unknown", func() {
			s := game.DefaultSettings()
			s.Mode = "skins"
			So(errors.Is(s.Validate(), game.ErrInvalidSettings), ShouldBeTrue)
			s = game.DefaultSettings()
			s.Scoring = "stableford"
			So(errors.Is(s.Validate(), game.ErrInvalidSettings), ShouldBeTrue)
		})

		Convey("When parsing client spellings", func() {
			m, err := game.ParseGameMode("Face-To-Face")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, game.FaceToFace)
			sc, err := game.ParseScoringType(" BOGEY ")
			So(err, ShouldBeNil)
			So(sc, ShouldEqual, game.BogeyScoring)
			_, err = game.ParseGameMode("nassau")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestGame_Setup(t *testing.T) {
	Convey("Given a new two player round", t, func() {
		g, err := game.New(settings(2, game.SingleWinner, game.ParScoring))
		So(err, ShouldBeNil)
		So(g.CurrentHole(), ShouldEqual, 1)

		Convey("When adding players", func() {
			So(g.AddPlayer("A"), ShouldBeNil)

			Convey("Then duplicates and blanks are rejected", func() {
				So(errors.Is(g.AddPlayer("A"), game.ErrDuplicatePlayer), ShouldBeTrue)
				So(errors.Is(g.AddPlayer("  "), game.ErrInvalidPlayer), ShouldBeTrue)
			})

			Convey("Then names with surrounding whitespace are rejected untouched", func() {
				So(errors.Is(g.AddPlayer(" B"), game.ErrInvalidPlayer), ShouldBeTrue)
				So(errors.Is(g.AddPlayer("B\t"), game.ErrInvalidPlayer), ShouldBeTrue)
				So(g.Players(), ShouldResemble, []string{"A"})
				So(g.AddPlayer("B C"), ShouldBeNil)
			})

			Convey("Then the configured count is enforced", func() {
				So(g.AddPlayer("B"), ShouldBeNil)
				So(errors.Is(g.AddPlayer("C"), game.ErrTooManyPlayers), ShouldBeTrue)
				So(g.Players(), ShouldResemble, []string{"A", "B"})
			})
		})

		Convey("When adding holes", func() {
			So(g.AddHole(1, 10, 4), ShouldBeNil)

			Convey("Then invalid and duplicate holes are rejected", func() {
				So(errors.Is(g.AddHole(1, 10, 4), game.ErrDuplicateHole), ShouldBeTrue)
				So(errors.Is(g.AddHole(10, 10, 4), game.ErrInvalidHole), ShouldBeTrue)
				So(errors.Is(g.AddHole(2, 0, 4), game.ErrInvalidHole), ShouldBeTrue)
				So(errors.Is(g.AddHole(2, 10, 0), game.ErrInvalidHole), ShouldBeTrue)
			})
		})

		Convey("When a score has been recorded", func() {
			g2 := newRound(t, settings(3, game.SingleWinner, game.ParScoring), "A", "B")
			So(g2.AddHole(1, 10, 4), ShouldBeNil)
			So(g2.SetPlayerScore(1, "A", 4), ShouldBeNil)

			Convey("Then no more players can join", func() {
				So(errors.Is(g2.AddPlayer("C"), game.ErrRoundStarted), ShouldBeTrue)
			})
		})
	})
}

func TestGame_UnknownReferences(t *testing.T) {
	Convey("Given a round with one hole", t, func() {
		g := newRound(t, settings(2, game.SingleWinner, game.ParScoring), "A", "B")
		So(g.AddHole(1, 10, 4), ShouldBeNil)

		Convey("When mutating unknown holes or players", func() {
			So(errors.Is(g.SetPlayerScore(2, "A", 4), game.ErrUnknownHole), ShouldBeTrue)
			So(errors.Is(g.SetPlayerScore(1, "Z", 4), game.ErrUnknownPlayer), ShouldBeTrue)
			_, err := g.CalculatePaymentsForHole(7)
			So(errors.Is(err, game.ErrUnknownHole), ShouldBeTrue)

			Convey("Then queries report nothing found", func() {
				_, ok := g.PlayerScore(1, "Z")
				So(ok, ShouldBeFalse)
				_, ok = g.HolePar(2)
				So(ok, ShouldBeFalse)
				_, ok = g.TotalScore("Z")
				So(ok, ShouldBeFalse)
				_, ok = g.HolePayments(2)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When recording an out of range score", func() {
			So(errors.Is(g.SetPlayerScore(1, "A", 0), game.ErrInvalidScore), ShouldBeTrue)
			So(errors.Is(g.SetPlayerScore(1, "A", game.MaxStrokes+1), game.ErrInvalidScore), ShouldBeTrue)
		})
	})
}

func TestGame_AdvanceHole(t *testing.T) {
	Convey("Given a two hole round", t, func() {
		s := settings(2, game.SingleWinner, game.ParScoring)
		s.HoleCount = 2
		g := newRound(t, s, "A", "B")

		Convey("When advancing through every hole", func() {
			next, finished, err := g.AdvanceHole()
			So(err, ShouldBeNil)
			So(next, ShouldEqual, 2)
			So(finished, ShouldBeFalse)

			next, finished, err = g.AdvanceHole()
			So(err, ShouldBeNil)
			So(next, ShouldEqual, 3)
			So(finished, ShouldBeTrue)
			So(g.Finished(), ShouldBeTrue)

			Convey("Then advancing again reports completion", func() {
				_, finished, err := g.AdvanceHole()
				So(finished, ShouldBeTrue)
				So(errors.Is(err, game.ErrRoundComplete), ShouldBeTrue)
			})
		})
	})
}

func TestGame_Voor(t *testing.T) {
	Convey("Given a round with voor enabled", t, func() {
		s := settings(3, game.SingleWinner, game.ParScoring)
		s.VoorEnabled = true
		g := newRound(t, s, "A", "B", "C")
		So(g.AddHole(1, 10, 4), ShouldBeNil)

		Convey("When A gives B two strokes and B scores 5", func() {
			So(g.SetVoorAdjustment("A", "B", 2), ShouldBeNil)
			So(g.SetPlayerScore(1, "B", 5), ShouldBeNil)

			Convey("Then the adjustment is stored on A", func() {
				strokes, ok := g.VoorGiven("A", "B")
				So(ok, ShouldBeTrue)
				So(strokes, ShouldEqual, 2)
			})

			Convey("Then B's score against A is 3", func() {
				So(g.AdjustedScoreAgainst("B", 1, "A"), ShouldEqual, 3)
			})

			Convey("Then B's score against C is unchanged", func() {
				So(g.AdjustedScoreAgainst("B", 1, "C"), ShouldEqual, 5)
			})

			Convey("Then B's best adjusted score is the lowest", func() {
				So(g.BestAdjustedScore("B", 1), ShouldEqual, 3)
				adj, ok := g.AdjustedScore("B", 1)
				So(ok, ShouldBeTrue)
				So(adj, ShouldEqual, 3)
			})

			Convey("Then A's own score is not reduced", func() {
				So(g.SetPlayerScore(1, "A", 4), ShouldBeNil)
				So(g.AdjustedScoreAgainst("A", 1, "B"), ShouldEqual, 4)
			})
		})

		Convey("When the adjustment is invalid", func() {
			So(errors.Is(g.SetVoorAdjustment("A", "A", 1), game.ErrSelfVoor), ShouldBeTrue)
			So(errors.Is(g.SetVoorAdjustment("A", "B", 3), game.ErrInvalidVoor), ShouldBeTrue)
			So(errors.Is(g.SetVoorAdjustment("A", "B", -1), game.ErrInvalidVoor), ShouldBeTrue)
			So(errors.Is(g.SetVoorAdjustment("A", "Z", 1), game.ErrUnknownPlayer), ShouldBeTrue)
		})

		Convey("When the adjustment is reset to zero", func() {
			So(g.SetVoorAdjustment("A", "B", 2), ShouldBeNil)
			So(g.SetVoorAdjustment("A", "B", 0), ShouldBeNil)
			So(g.SetPlayerScore(1, "B", 5), ShouldBeNil)
			So(g.AdjustedScoreAgainst("B", 1, "A"), ShouldEqual, 5)
		})
	})

	Convey("Given a round with voor disabled", t, func() {
		g := newRound(t, settings(2, game.SingleWinner, game.ParScoring), "A", "B")

		Convey("Then adjustments are rejected", func() {
			So(errors.Is(g.SetVoorAdjustment("A", "B", 1), game.ErrVoorDisabled), ShouldBeTrue)
		})
	})

	Convey("Given a player without opponents", t, func() {
		g := newRound(t, settings(2, game.SingleWinner, game.ParScoring), "A")
		So(g.AddHole(1, 10, 4), ShouldBeNil)
		So(g.SetPlayerScore(1, "A", 6), ShouldBeNil)

		Convey("Then the best adjusted score falls back to the raw score", func() {
			So(g.BestAdjustedScore("A", 1), ShouldEqual, 6)
		})
	})
}

func TestGame_Totals(t *testing.T) {
	Convey("Given a voor round with two scored holes", t, func() {
		s := settings(3, game.SingleWinner, game.ParScoring)
		s.VoorEnabled = true
		g := newRound(t, s, "A", "B", "C")
		So(g.AddHole(1, 10, 4), ShouldBeNil)
		So(g.AddHole(2, 10, 3), ShouldBeNil)
		So(g.AddHole(3, 10, 5), ShouldBeNil)
		So(g.SetVoorAdjustment("A", "B", 1), ShouldBeNil)
		So(g.SetPlayerScore(1, "B", 5), ShouldBeNil)
		So(g.SetPlayerScore(2, "B", 4), ShouldBeNil)

		Convey("Then the raw total ignores unscored holes", func() {
			total, ok := g.TotalScore("B")
			So(ok, ShouldBeTrue)
			So(total, ShouldEqual, 9)
		})

		Convey("Then the adjusted total uses the best score per hole", func() {
			total, ok := g.AdjustedTotalScore("B")
			So(ok, ShouldBeTrue)
			So(total, ShouldEqual, 7)
		})

		Convey("Then the par and raw score are available per hole", func() {
			par, ok := g.HolePar(2)
			So(ok, ShouldBeTrue)
			So(par, ShouldEqual, 3)
			score, ok := g.PlayerScore(2, "B")
			So(ok, ShouldBeTrue)
			So(score, ShouldEqual, 4)
			_, ok = g.AdjustedScore("B", 3)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a round without voor", t, func() {
		g := newRound(t, settings(2, game.SingleWinner, game.ParScoring), "A", "B")
		So(g.AddHole(1, 10, 4), ShouldBeNil)
		So(g.SetPlayerScore(1, "A", 5), ShouldBeNil)

		Convey("Then adjusted totals equal raw totals", func() {
			raw, _ := g.TotalScore("A")
			adj, _ := g.AdjustedTotalScore("A")
			So(adj, ShouldEqual, raw)
		})
	})
}
