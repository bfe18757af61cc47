package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/okian/golfbet/internal/roundsim"
	"github.com/okian/golfbet/pkg/logger"
)

// CLI plays generated rounds against a running service and verifies their
// settlements.
type CLI struct {
	URL         string        `default:"http://localhost:9080" help:"Base URL of the service"`
	Rounds      int           `default:"50" help:"Number of rounds to play"`
	Players     int           `default:"4" help:"Players per round"`
	Holes       int           `default:"9" help:"Holes per round"`
	Mode        string        `default:"single_winner" enum:"single_winner,face_to_face" help:"Game mode"`
	Scoring     string        `default:"par" enum:"par,bogey" help:"Scoring type"`
	Voor        bool          `help:"Give random strokes between players"`
	Buchi       bool          `help:"Play the buchi side bet on every hole"`
	Concurrency int           `default:"4" help:"Rounds in flight at once"`
	Timeout     time.Duration `default:"10s" help:"HTTP request timeout"`
	Seed        int64         `default:"0" help:"Generator seed (0 for random)"`
	Verbose     bool          `short:"v" help:"Log every round"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("round-sim"),
		kong.Description("Play generated golf wagering rounds against golfbet and verify every settlement."),
	)

	if err := logger.Init(); err != nil {
		kctx.FatalIfErrorf(err)
	}
	if !cli.Verbose {
		_ = logger.SetLevelString("warn")
	}

	if err := run(&cli); err != nil {
		os.Stderr.WriteString("round simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err := roundsim.Run(ctx, &roundsim.Config{
		BaseURL:     cli.URL,
		Rounds:      cli.Rounds,
		Players:     cli.Players,
		Holes:       cli.Holes,
		Mode:        cli.Mode,
		Scoring:     cli.Scoring,
		Voor:        cli.Voor,
		Buchi:       cli.Buchi,
		Concurrency: cli.Concurrency,
		Timeout:     cli.Timeout,
		Seed:        cli.Seed,
		Verbose:     cli.Verbose,
	}, os.Stdout)
	return err
}
