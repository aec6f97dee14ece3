// Package render drives replay of an event stream against the canvas and
// materializes frames at the configured cadence.
package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/san-kum/pixelapse/internal/canvas"
	"github.com/san-kum/pixelapse/internal/style"
)

// EventSource is a lazy, single-pass, forward-only event sequence. Next
// returns io.EOF when the log is exhausted. Events must arrive in
// non-decreasing timestamp order; the scheduler never re-orders them.
type EventSource interface {
	Next() (canvas.Event, error)
}

// ErrorPolicy selects what happens when the stream yields a data error.
type ErrorPolicy int

const (
	// AbortOnError stops the run on the first data error.
	AbortOnError ErrorPolicy = iota
	// SkipOnError drops the offending event and keeps going; errors are
	// collected and reported at exit.
	SkipOnError
)

// keep at most this many data errors verbatim in the report
const maxReportedErrors = 16

// Options configures a replay run.
type Options struct {
	// Step is the interval between frames. Zero or Screenshot disables
	// intermediate frames.
	Step       time.Duration
	Screenshot bool
	// SuppressFinal skips the terminal frame.
	SuppressFinal bool
	// Window restricts which cells are read when materializing frames.
	// The canvas itself always reflects the full history.
	Window *canvas.Region
	Policy ErrorPolicy
	Logger *slog.Logger
}

// Report summarizes a finished run.
type Report struct {
	Events  int
	Applied int
	Skipped int
	Frames  int
	// DataErrors holds up to maxReportedErrors skipped-event errors.
	DataErrors []error
}

type phase int

const (
	phasePriming phase = iota
	phaseStreaming
	phaseFinalizing
	phaseDone
)

// Scheduler owns the replay loop: it applies events to the canvas in order,
// decides when a snapshot is due, resolves cells through the style resolver
// and hands frames to the sink. Only one frame buffer is ever live.
type Scheduler struct {
	cv    *canvas.Canvas
	res   *style.Resolver
	sink  Sink
	opts  Options
	frame *Frame
	state phase
}

func NewScheduler(cv *canvas.Canvas, res *style.Resolver, sink Sink, opts Options) (*Scheduler, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	window := opts.Window
	if window != nil {
		if window.X1 < 0 || window.Y1 < 0 || window.X2 >= cv.Width() || window.Y2 >= cv.Height() {
			return nil, fmt.Errorf("render: window %s outside canvas %dx%d",
				window, cv.Width(), cv.Height())
		}
	} else {
		r := canvas.NewRegion(0, 0, cv.Width()-1, cv.Height()-1)
		opts.Window = &r
	}
	if !opts.Screenshot && opts.Step <= 0 {
		// step 0 means "one giant interval": only start and final frames
		opts.Step = time.Duration(1<<62 - 1)
	}
	return &Scheduler{
		cv:    cv,
		res:   res,
		sink:  sink,
		opts:  opts,
		frame: NewFrame(opts.Window.Width(), opts.Window.Height()),
		state: phasePriming,
	}, nil
}

// Run consumes the source to exhaustion. It returns the report alongside
// any fatal error; on a fatal error the report covers progress so far.
func (s *Scheduler) Run(src EventSource) (*Report, error) {
	rep := &Report{}
	s.state = phaseStreaming

	var (
		started  bool
		nextTick time.Time
		lastTime time.Time
	)

	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var derr *canvas.DataError
			if errors.As(err, &derr) && s.opts.Policy == SkipOnError {
				rep.Skipped++
				rep.recordError(err)
				s.opts.Logger.Warn("skipping bad event", "err", err)
				continue
			}
			return rep, err
		}
		rep.Events++

		if !started {
			started = true
			if s.res.Epoch.IsZero() {
				s.res.Epoch = ev.Time
			}
			if !s.opts.Screenshot {
				// the first interval frame is the seeded start state
				if err := s.emit(rep, ev.Time); err != nil {
					return rep, err
				}
				nextTick = ev.Time.Add(s.opts.Step)
			}
		}

		if !s.opts.Screenshot {
			// a frame at tick T reflects only events strictly before T;
			// gaps re-emit so frame count tracks elapsed time
			for !ev.Time.Before(nextTick) {
				if err := s.emit(rep, nextTick); err != nil {
					return rep, err
				}
				nextTick = nextTick.Add(s.opts.Step)
			}
		}

		if err := s.cv.Apply(ev); err != nil {
			if s.opts.Policy == SkipOnError {
				rep.Skipped++
				rep.recordError(err)
				s.opts.Logger.Warn("skipping bad event", "err", err)
				continue
			}
			return rep, err
		}
		rep.Applied++
		lastTime = ev.Time
	}

	s.state = phaseFinalizing
	if !s.opts.SuppressFinal {
		if err := s.emit(rep, lastTime); err != nil {
			return rep, err
		}
	}
	if err := s.sink.Close(); err != nil {
		return rep, err
	}
	s.state = phaseDone
	s.frame = nil
	return rep, nil
}

// emit materializes the window into the shared frame buffer and hands it to
// the sink.
func (s *Scheduler) emit(rep *Report, at time.Time) error {
	w := s.opts.Window
	s.frame.Time = at
	for y := w.Y1; y <= w.Y2; y++ {
		for x := w.X1; x <= w.X2; x++ {
			c := s.res.ColorFor(s.cv.Cell(x, y), s.cv.Background(x, y), at)
			s.frame.Set(x-w.X1, y-w.Y1, c)
		}
	}
	if err := s.sink.Write(s.frame); err != nil {
		return err
	}
	rep.Frames++
	return nil
}

// Done reports whether the scheduler finished and released its buffers.
func (s *Scheduler) Done() bool { return s.state == phaseDone }

func (r *Report) recordError(err error) {
	if len(r.DataErrors) < maxReportedErrors {
		r.DataErrors = append(r.DataErrors, err)
	}
}
