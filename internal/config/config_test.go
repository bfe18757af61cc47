package config_test

import (
	"errors"
	"testing"

	"github.com/okian/golfbet/internal/config"
	"github.com/okian/golfbet/internal/domain/game"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.MaxGames, convey.ShouldEqual, 10_000)
			convey.So(cfg.EventBuffer, convey.ShouldEqual, 1024)
			convey.So(cfg.RateLimitRPS, convey.ShouldEqual, 50)
			convey.So(cfg.RateLimitBurst, convey.ShouldEqual, 100)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the default round settings are valid", func() {
			s, err := cfg.DefaultSettings()
			convey.So(err, convey.ShouldBeNil)
			convey.So(s.PlayerCount, convey.ShouldEqual, 2)
			convey.So(s.HoleCount, convey.ShouldEqual, 9)
			convey.So(s.Mode, convey.ShouldEqual, game.SingleWinner)
			convey.So(s.Scoring, convey.ShouldEqual, game.ParScoring)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs that break one rule each", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":       func(c *config.Config) { c.Addr = " " },
			"bad log format":   func(c *config.Config) { c.LogFormat = "xml" },
			"zero max games":   func(c *config.Config) { c.MaxGames = 0 },
			"negative buffer":  func(c *config.Config) { c.EventBuffer = -1 },
			"zero rate":        func(c *config.Config) { c.RateLimitRPS = 0 },
			"zero burst":       func(c *config.Config) { c.RateLimitBurst = 0 },
			"unknown mode":     func(c *config.Config) { c.DefaultMode = "skins" },
			"unknown scoring":  func(c *config.Config) { c.DefaultScoring = "stableford" },
			"too many players": func(c *config.Config) { c.DefaultPlayers = 11 },
			"too many holes":   func(c *config.Config) { c.DefaultHoles = 19 },
		}

		for name, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.Convey("Then "+name+" is rejected as invalid config", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
