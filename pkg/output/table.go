package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// RenderTables renders the report as terminal tables
func RenderTables(r *Report) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf(
		"Manufacturer standings %d (series: %s, scoring: %s)",
		r.Year, r.Series, r.ScoringRule)))
	sb.WriteString("\n")
	if r.Partial {
		sb.WriteString(warnStyle.Render(
			fmt.Sprintf("%d race(s) skipped, results are incomplete", len(r.Skipped))))
		sb.WriteString("\n")
	}

	section := func(title string, t *table.Table) {
		sb.WriteString(titleStyle.Render(title))
		sb.WriteString("\n")
		sb.WriteString(t.String())
		sb.WriteString("\n")
	}
	section("Summary", summaryTable(r.Summary))
	section("Standings", standingsTable(r.Standings))
	section("Cumulative points", cumulativeTable(r.Cumulative))
	if len(r.Skipped) > 0 {
		section("Skipped races", skippedTable(r.Skipped))
	}
	return sb.String()
}

// newTable creates a table whose columns listed in numeric are right aligned
func newTable(headers []string, numeric ...int) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case lo.Contains(numeric, col):
				return numberStyle
			default:
				return cellStyle
			}
		})
}

func summaryTable(entries []SummaryEntry) *table.Table {
	t := newTable([]string{"Manufacturer", "Races", "Wins", "Win %", "Points"}, 1, 2, 3, 4)
	for i := range entries {
		e := &entries[i]
		t.Row(e.Manufacturer, itoa(e.Races), itoa(e.Wins), lo.Ternary(e.WinPct == "", "-", e.WinPct),
			itoa(e.Points))
	}
	return t
}

func standingsTable(entries []StandingEntry) *table.Table {
	t := newTable([]string{"Date", "Race", "Series", "Manufacturer", "Driver", "Pos", "Points"}, 5, 6)
	for i := range entries {
		e := &entries[i]
		t.Row(e.RaceDate, raceLabel(e), e.Series, e.Manufacturer, driverLabel(e), itoa(e.Ps),
			itoa(e.Points))
	}
	return t
}

func cumulativeTable(entries []CumulativeEntry) *table.Table {
	t := newTable([]string{"Manufacturer", "Date", "Race", "Points", "Total"}, 3, 4)
	for i := range entries {
		e := &entries[i]
		t.Row(e.Manufacturer, e.RaceDate, raceLabel(&e.StandingEntry), itoa(e.Points),
			itoa(e.CumSum))
	}
	return t
}

func skippedTable(entries []SkippedEntry) *table.Table {
	t := newTable([]string{"Race", "Series", "Status", "Error"}, 2)
	for i := range entries {
		e := &entries[i]
		t.Row(lo.Ternary(e.RaceName == "", itoa(e.RaceID), e.RaceName), e.Series,
			lo.Ternary(e.StatusCode == 0, "-", itoa(e.StatusCode)), e.Error)
	}
	return t
}

func raceLabel(e *StandingEntry) string {
	if e.RaceName == "" {
		return itoa(e.RaceID)
	}
	return e.RaceName
}

func driverLabel(e *StandingEntry) string {
	if e.DriverName == "" {
		return "#" + itoa(e.DriverID)
	}
	return e.DriverName
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
