package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pixelapse/internal/canvas"
	"github.com/san-kum/pixelapse/internal/palette"
)

const leaderboardSize = 10

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	swatchStyle = lipgloss.NewStyle().SetString("██")
)

// WriteTerminal renders the summary as styled tables. plot adds an hourly
// activity graph.
func WriteTerminal(w io.Writer, st *Stats, pal palette.Palette, mode Mode, plot bool) error {
	var b strings.Builder

	if mode == ModeAll || mode == ModeCanvas {
		b.WriteString(headerStyle.Render("canvas") + "\n")
		writeRow(&b, "events", strconv.Itoa(st.Total))
		writeRow(&b, "skipped", strconv.Itoa(st.Skipped))
		writeRow(&b, "cells touched", strconv.Itoa(st.Touched))
		writeRow(&b, "users", strconv.Itoa(len(st.ByUser)))
		if !st.First.IsZero() {
			writeRow(&b, "first", st.First.Format("2006-01-02 15:04:05"))
			writeRow(&b, "last", st.Last.Format("2006-01-02 15:04:05"))
			writeRow(&b, "span", st.Last.Sub(st.First).String())
		}
		for _, k := range []canvas.ActionKind{
			canvas.ActionPlace, canvas.ActionUndo, canvas.ActionOverwrite,
			canvas.ActionRollback, canvas.ActionRollbackUndo, canvas.ActionNuke,
		} {
			if n := st.ByKind[k]; n > 0 {
				writeRow(&b, k.String(), strconv.Itoa(n))
			}
		}
		b.WriteString("\n")
	}

	if mode == ModeAll || mode == ModeColor {
		b.WriteString(headerStyle.Render("colors") + "\n")
		for _, cc := range st.ColorCounts() {
			label := fmt.Sprintf("index %d", cc.Index)
			if c, ok := pal.Color(cc.Index); ok {
				hexCol := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
				swatch := swatchStyle.Foreground(lipgloss.Color(hexCol)).String()
				label = fmt.Sprintf("%s %2d %s", swatch, cc.Index, hexCol)
			}
			writeRow(&b, label, strconv.Itoa(cc.Count))
		}
		b.WriteString("\n")
	}

	if mode == ModeAll || mode == ModeLeaderboard {
		b.WriteString(headerStyle.Render("leaderboard") + "\n")
		for i, row := range st.Leaderboard(leaderboardSize) {
			user := row.User
			if len(user) > 32 {
				user = user[:32] + "..."
			}
			writeRow(&b, fmt.Sprintf("%2d. %s", i+1, user), strconv.Itoa(row.Count))
		}
		b.WriteString("\n")
	}

	if plot {
		if series := st.HourlySeries(); len(series) > 1 {
			b.WriteString(headerStyle.Render("events per hour") + "\n")
			b.WriteString(asciigraph.Plot(series,
				asciigraph.Height(10),
				asciigraph.Width(72),
			))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(fmt.Sprintf("  %s %s\n",
		labelStyle.Width(36).Render(label), valueStyle.Render(value)))
}

// WriteCSV emits the summary in machine-readable form.
func WriteCSV(w io.Writer, st *Stats, mode Mode) error {
	cw := csv.NewWriter(w)
	switch mode {
	case ModeColor:
		if err := cw.Write([]string{"index", "count"}); err != nil {
			return err
		}
		for _, cc := range st.ColorCounts() {
			if err := cw.Write([]string{strconv.Itoa(cc.Index), strconv.Itoa(cc.Count)}); err != nil {
				return err
			}
		}
	case ModeLeaderboard:
		if err := cw.Write([]string{"user", "count"}); err != nil {
			return err
		}
		for _, row := range st.Leaderboard(0) {
			if err := cw.Write([]string{row.User, strconv.Itoa(row.Count)}); err != nil {
				return err
			}
		}
	default:
		if err := cw.Write([]string{"metric", "value"}); err != nil {
			return err
		}
		rows := [][]string{
			{"events", strconv.Itoa(st.Total)},
			{"skipped", strconv.Itoa(st.Skipped)},
			{"cells_touched", strconv.Itoa(st.Touched)},
			{"users", strconv.Itoa(len(st.ByUser))},
		}
		if !st.First.IsZero() {
			rows = append(rows,
				[]string{"first", st.First.Format("2006-01-02 15:04:05")},
				[]string{"last", st.Last.Format("2006-01-02 15:04:05")},
			)
		}
		for _, r := range rows {
			if err := cw.Write(r); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
