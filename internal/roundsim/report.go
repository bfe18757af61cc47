package roundsim

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Width(14)
)

// Report summarizes a simulation run.
type Report struct {
	Seed     int64
	Duration time.Duration
	Results  []RoundResult
}

// Failed returns the number of rounds that did not verify.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Render formats the report for a terminal.
func (r *Report) Render() string {
	var (
		payments, transfers int
		volume              float64
		slowest             time.Duration
	)
	for _, res := range r.Results {
		payments += res.Payments
		transfers += res.Transfers
		volume += res.Volume
		slowest = max(slowest, res.Duration)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Round simulation") + "\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}
	row("seed", fmt.Sprint(r.Seed))
	row("rounds", fmt.Sprint(len(r.Results)))
	row("hole payments", fmt.Sprint(payments))
	row("transfers", fmt.Sprint(transfers))
	row("volume", fmt.Sprintf("%.2f", volume))
	row("duration", r.Duration.Round(time.Millisecond).String())
	row("slowest", slowest.Round(time.Millisecond).String())

	if failed := r.Failed(); failed > 0 {
		row("result", failStyle.Render(fmt.Sprintf("%d failed", failed)))
		for _, res := range r.Results {
			if res.Err != nil {
				b.WriteString(failStyle.Render("  "+res.GameID+": "+res.Err.Error()) + "\n")
			}
		}
	} else {
		row("result", okStyle.Render("all settlements verified"))
	}
	return b.String()
}
