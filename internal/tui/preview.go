// Package tui previews a rendered timelapse in the terminal. Frames are
// downsampled into half-block cells so a full canvas fits in a normal
// terminal window.
package tui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/pixelapse/internal/render"
)

const (
	previewCols = 80
	// two pixels per text row via half blocks
	previewRows = 48
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Italic(true)
)

// snapshot is one downsampled frame.
type snapshot struct {
	time time.Time
	pix  []color.NRGBA // previewCols * previewRows
}

// Recorder is a render.Sink that keeps downsampled copies of every frame,
// so the preview can seek through them after replay finishes.
type Recorder struct {
	cols, rows int
	snaps      []snapshot
}

func NewRecorder() *Recorder {
	return &Recorder{cols: previewCols, rows: previewRows}
}

func (r *Recorder) Write(f *render.Frame) error {
	// shrink the grid for canvases smaller than the preview
	if len(r.snaps) == 0 {
		if f.Width() < r.cols {
			r.cols = f.Width()
		}
		if f.Height() < r.rows {
			r.rows = f.Height() &^ 1
			if r.rows < 2 {
				r.rows = 2
			}
		}
	}
	snap := snapshot{time: f.Time, pix: make([]color.NRGBA, r.cols*r.rows)}
	for y := 0; y < r.rows; y++ {
		for x := 0; x < r.cols; x++ {
			// nearest neighbor is plenty for a terminal preview
			sx := x * f.Width() / r.cols
			sy := y * f.Height() / r.rows
			snap.pix[y*r.cols+x] = f.At(sx, sy)
		}
	}
	r.snaps = append(r.snaps, snap)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Frames reports how many snapshots were recorded.
func (r *Recorder) Frames() int { return len(r.snaps) }

type tickMsg time.Time

// Model pages through recorded snapshots.
type Model struct {
	title   string
	rec     *Recorder
	index   int
	playing bool
	fps     int
}

func NewModel(title string, rec *Recorder) *Model {
	return &Model{title: title, rec: rec, playing: true, fps: 12}
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
			if m.playing {
				return m, m.tick()
			}
		case "left", "h":
			m.playing = false
			if m.index > 0 {
				m.index--
			}
		case "right", "l":
			m.playing = false
			if m.index < len(m.rec.snaps)-1 {
				m.index++
			}
		case "home", "g":
			m.playing = false
			m.index = 0
		case "end", "G":
			m.playing = false
			m.index = len(m.rec.snaps) - 1
		}
	case tickMsg:
		if !m.playing {
			return m, nil
		}
		if m.index < len(m.rec.snaps)-1 {
			m.index++
		} else {
			m.playing = false
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) View() string {
	if len(m.rec.snaps) == 0 {
		return dimStyle.Render("no frames recorded") + "\n"
	}
	snap := m.rec.snaps[m.index]

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  frame %d/%d  %s",
		m.index+1, len(m.rec.snaps), snap.time.Format("2006-01-02 15:04:05"))))
	b.WriteString("\n")

	// each text row shows two pixel rows: ▀ takes the upper color as
	// foreground and the lower as background
	for y := 0; y < m.rec.rows; y += 2 {
		for x := 0; x < m.rec.cols; x++ {
			top := snap.pix[y*m.rec.cols+x]
			bot := snap.pix[(y+1)*m.rec.cols+x]
			st := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top))).
				Background(lipgloss.Color(hexColor(bot)))
			b.WriteString(st.Render("▀"))
		}
		b.WriteString("\n")
	}

	b.WriteString(keyStyle.Render("space play/pause · ←/→ step · g/G ends · q quit"))
	b.WriteString("\n")
	return b.String()
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Run starts the interactive preview.
func Run(title string, rec *Recorder) error {
	p := tea.NewProgram(NewModel(title, rec), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
