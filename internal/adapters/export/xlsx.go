// Package export renders round scorecards as spreadsheets and charts.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/okian/golfbet/internal/domain/types"
)

// Sheet names of the scorecard workbook.
const (
	ScorecardSheet  = "Scorecard"
	SettlementSheet = "Settlement"
)

// ScorecardXLSX writes the per-hole scores, totals and settlement of a round.
// With voor enabled every player gets a raw and an adjusted column.
func ScorecardXLSX(sc types.Scorecard) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), ScorecardSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SettlementSheet); err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("style: %w", err)
	}

	if err := writeScores(f, sc, bold); err != nil {
		return nil, err
	}
	if err := writeSettlement(f, sc, bold); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeScores(f *excelize.File, sc types.Scorecard, bold int) error {
	voor := sc.Settings.VoorEnabled

	header := []any{"Hole", "Par", "Value"}
	for _, p := range sc.Players {
		header = append(header, p)
		if voor {
			header = append(header, p+" adj")
		}
	}
	if err := setRow(f, ScorecardSheet, 1, header); err != nil {
		return err
	}

	row := 2
	for _, h := range sc.Holes {
		cells := []any{h.Number, h.Par, h.Value}
		for _, s := range h.Scores {
			cells = append(cells, scoreCell(s.Raw, s.Scored))
			if voor {
				cells = append(cells, scoreCell(s.Adjusted, s.Scored))
			}
		}
		if err := setRow(f, ScorecardSheet, row, cells); err != nil {
			return err
		}
		row++
	}

	totals := []any{"Total", "", ""}
	for _, t := range sc.Totals {
		totals = append(totals, t.Total)
		if voor {
			totals = append(totals, t.AdjustedTotal)
		}
	}
	if err := setRow(f, ScorecardSheet, row, totals); err != nil {
		return err
	}
	return boldRows(f, ScorecardSheet, len(header), bold, 1, row)
}

func writeSettlement(f *excelize.File, sc types.Scorecard, bold int) error {
	if err := setRow(f, SettlementSheet, 1, []any{"Payer", "Payee", "Amount"}); err != nil {
		return err
	}
	for i, t := range sc.Settlement {
		if err := setRow(f, SettlementSheet, i+2, []any{t.From, t.To, t.Amount}); err != nil {
			return err
		}
	}

	// per-player net below the transfers
	row := len(sc.Settlement) + 3
	if err := setRow(f, SettlementSheet, row, []any{"Player", "Net"}); err != nil {
		return err
	}
	for i, t := range sc.Totals {
		if err := setRow(f, SettlementSheet, row+1+i, []any{t.Player, t.Net}); err != nil {
			return err
		}
	}
	return boldRows(f, SettlementSheet, 3, bold, 1, row)
}

func scoreCell(v int, scored bool) any {
	if !scored {
		return "-"
	}
	return v
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

func boldRows(f *excelize.File, sheet string, width, style int, rows ...int) error {
	for _, r := range rows {
		from, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return err
		}
		to, err := excelize.CoordinatesToCellName(width, r)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, from, to, style); err != nil {
			return fmt.Errorf("%s style: %w", sheet, err)
		}
	}
	return nil
}
