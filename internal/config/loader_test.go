package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/golfbet/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.MaxGames, convey.ShouldEqual, 10_000)
				convey.So(cfg.DefaultMode, convey.ShouldEqual, "single_winner")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("GOLFBET_ADDR", ":8080")
			_ = os.Setenv("GOLFBET_MAX_GAMES", "25")
			_ = os.Setenv("GOLFBET_RATE_LIMIT_RPS", "2.5")
			_ = os.Setenv("GOLFBET_DEFAULT_MODE", "face_to_face")
			_ = os.Setenv("GOLFBET_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxGames, convey.ShouldEqual, 25)
				convey.So(cfg.RateLimitRPS, convey.ShouldEqual, 2.5)
				convey.So(cfg.DefaultMode, convey.ShouldEqual, "face_to_face")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
# round defaults
addr: ":9090"
max_games: 500
event_buffer: 64
default_players: 4
default_holes: 18
default_scoring: bogey
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("GOLFBET_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.MaxGames, convey.ShouldEqual, 500)
				convey.So(cfg.EventBuffer, convey.ShouldEqual, 64)
				convey.So(cfg.DefaultPlayers, convey.ShouldEqual, 4)
				convey.So(cfg.DefaultHoles, convey.ShouldEqual, 18)
				convey.So(cfg.DefaultScoring, convey.ShouldEqual, "bogey")
				convey.So(cfg.RateLimitBurst, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\nmax_games: 500\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("GOLFBET_CONFIG", tmpFile)
			_ = os.Setenv("GOLFBET_MAX_GAMES", "7")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.MaxGames, convey.ShouldEqual, 7)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile("addr: [unclosed\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("GOLFBET_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("GOLFBET_CONFIG", "/nonexistent/golfbet.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("GOLFBET_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown default mode", func() {
			_ = os.Setenv("GOLFBET_DEFAULT_MODE", "skins")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("GOLFBET_MAX_GAMES", "many")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"GOLFBET_CONFIG",
		"GOLFBET_ADDR",
		"GOLFBET_LOG_FORMAT",
		"GOLFBET_MAX_GAMES",
		"GOLFBET_RATE_LIMIT_RPS",
		"GOLFBET_DEFAULT_MODE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "golfbet-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
