package render

import (
	"errors"
	"io"

	"github.com/san-kum/pixelapse/internal/canvas"
)

// Events wraps an in-memory slice as an EventSource. Used by tests and by
// the preview, which replays a log it already holds.
func Events(evs []canvas.Event) EventSource {
	return &sliceSource{evs: evs}
}

type sliceSource struct {
	evs []canvas.Event
	i   int
}

func (s *sliceSource) Next() (canvas.Event, error) {
	if s.i >= len(s.evs) {
		return canvas.Event{}, io.EOF
	}
	ev := s.evs[s.i]
	s.i++
	return ev, nil
}

// Filtered drops events the keep predicate rejects. A nil predicate keeps
// everything. Errors pass through untouched so the scheduler's error policy
// still applies.
func Filtered(src EventSource, keep func(canvas.Event) bool) EventSource {
	if keep == nil {
		return src
	}
	return &filteredSource{src: src, keep: keep}
}

type filteredSource struct {
	src  EventSource
	keep func(canvas.Event) bool
}

func (f *filteredSource) Next() (canvas.Event, error) {
	for {
		ev, err := f.src.Next()
		if err != nil {
			return ev, err
		}
		if f.keep(ev) {
			return ev, nil
		}
	}
}

type item struct {
	ev  canvas.Event
	err error
}

// Buffered decouples parsing from replay with a bounded queue: a producer
// goroutine reads ahead while the consumer renders, and blocks when the
// consumer falls behind. Order is preserved exactly, including the position
// of per-event errors. This is an optimization only; replay itself stays
// sequential.
func Buffered(src EventSource, depth int) EventSource {
	if depth <= 0 {
		depth = 1024
	}
	ch := make(chan item, depth)
	go func() {
		defer close(ch)
		for {
			ev, err := src.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			ch <- item{ev: ev, err: err}
			if err != nil {
				var derr *canvas.DataError
				if !errors.As(err, &derr) {
					// not a per-event problem; the stream is dead
					return
				}
			}
		}
	}()
	return &chanSource{ch: ch}
}

type chanSource struct {
	ch <-chan item
}

func (c *chanSource) Next() (canvas.Event, error) {
	it, ok := <-c.ch
	if !ok {
		return canvas.Event{}, io.EOF
	}
	return it.ev, it.err
}
