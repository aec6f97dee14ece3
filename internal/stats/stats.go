// Package stats aggregates placement logs into per-color, per-user and
// canvas-wide summaries.
package stats

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/san-kum/pixelapse/internal/canvas"
	"github.com/san-kum/pixelapse/internal/filter"
	"github.com/san-kum/pixelapse/internal/render"
)

// Mode selects which summary to produce.
type Mode int

const (
	ModeAll Mode = iota
	ModeColor
	ModeCanvas
	ModeLeaderboard
)

// ParseMode maps a mode name from the CLI.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "all":
		return ModeAll, nil
	case "color":
		return ModeColor, nil
	case "canvas":
		return ModeCanvas, nil
	case "leaderboard":
		return ModeLeaderboard, nil
	}
	return 0, fmt.Errorf("stats: unknown mode %q", s)
}

// Stats is the accumulated summary of one pass over a log.
type Stats struct {
	Total   int
	Skipped int
	ByColor map[int]int
	ByKind  map[canvas.ActionKind]int
	ByUser  map[string]int
	// ByHour counts events per wall-clock hour (unix time / 3600).
	ByHour map[int64]int
	// Touched counts distinct cells that saw at least one event.
	Touched int
	First   time.Time
	Last    time.Time

	touched map[[2]int]struct{}
}

// Collect folds an event stream into a summary. Filtered events never
// count; malformed lines are skipped and tallied.
func Collect(src render.EventSource, f *filter.Filter) (*Stats, error) {
	st := &Stats{
		ByColor: make(map[int]int),
		ByKind:  make(map[canvas.ActionKind]int),
		ByUser:  make(map[string]int),
		ByHour:  make(map[int64]int),
		touched: make(map[[2]int]struct{}),
	}
	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var derr *canvas.DataError
			if errors.As(err, &derr) {
				st.Skipped++
				continue
			}
			return nil, err
		}
		if f != nil && !f.Match(ev) {
			continue
		}
		st.Total++
		if ev.HasIndex() {
			st.ByColor[ev.Index]++
		}
		st.ByKind[ev.Kind]++
		st.ByUser[ev.User]++
		st.ByHour[ev.Time.Unix()/3600]++
		st.touched[[2]int{ev.X, ev.Y}] = struct{}{}
		if st.First.IsZero() || ev.Time.Before(st.First) {
			st.First = ev.Time
		}
		if ev.Time.After(st.Last) {
			st.Last = ev.Time
		}
	}
	st.Touched = len(st.touched)
	st.touched = nil
	return st, nil
}

// HourlySeries returns per-hour event counts as a dense series from the
// first to the last active hour, for plotting.
func (st *Stats) HourlySeries() []float64 {
	if len(st.ByHour) == 0 {
		return nil
	}
	hours := make([]int64, 0, len(st.ByHour))
	for h := range st.ByHour {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i] < hours[j] })
	first, last := hours[0], hours[len(hours)-1]
	out := make([]float64, last-first+1)
	for h, n := range st.ByHour {
		out[h-first] = float64(n)
	}
	return out
}

// UserCount holds one leaderboard row.
type UserCount struct {
	User  string
	Count int
}

// Leaderboard returns the top n users by event count.
func (st *Stats) Leaderboard(n int) []UserCount {
	rows := make([]UserCount, 0, len(st.ByUser))
	for u, c := range st.ByUser {
		rows = append(rows, UserCount{User: u, Count: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].User < rows[j].User
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// ColorCounts returns color usage sorted by descending count.
func (st *Stats) ColorCounts() []struct {
	Index int
	Count int
} {
	out := make([]struct {
		Index int
		Count int
	}, 0, len(st.ByColor))
	for idx, c := range st.ByColor {
		out = append(out, struct {
			Index int
			Count int
		}{idx, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Index < out[j].Index
	})
	return out
}
