package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/golfbet/internal/domain/types"
)

const (
	chartWidth  = 800
	chartHeight = 400
)

// BalanceChartPNG draws each player's cumulative balance after every hole.
func BalanceChartPNG(sc types.Scorecard) ([]byte, error) {
	if len(sc.Holes) == 0 || len(sc.Players) == 0 {
		return renderPlaceholder("No holes played yet")
	}

	xs := make([]float64, len(sc.Holes))
	ticks := make([]chart.Tick, 0, len(sc.Holes)+1)
	ticks = append(ticks, chart.Tick{Value: 0, Label: ""})
	for i, h := range sc.Holes {
		xs[i] = float64(i + 1)
		ticks = append(ticks, chart.Tick{Value: xs[i], Label: strconv.Itoa(h.Number)})
	}

	lo, hi := 0.0, 0.0
	series := make([]chart.Series, 0, len(sc.Players))
	for i, p := range sc.Players {
		ys := sc.Running[p]
		if len(ys) != len(xs) {
			return nil, fmt.Errorf("running balance for %q has %d points, want %d", p, len(ys), len(xs))
		}
		for _, y := range ys {
			lo, hi = min(lo, y), max(hi, y)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    p,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2,
				DotWidth:    3,
				DotColor:    chart.GetDefaultColor(i),
			},
		})
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	graph := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Hole",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(xs))},
		},
		YAxis: chart.YAxis{
			Name:  "Balance",
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render balance chart: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPlaceholder(msg string) ([]byte, error) {
	graph := chart.Chart{
		Width:  chartWidth / 2,
		Height: chartHeight / 2,
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				r.SetFontColor(drawing.ColorBlack)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				r.Text(msg, (cb.Width()-tb.Width())/2, (cb.Height()+tb.Height())/2)
			},
		},
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
