package render

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/san-kum/pixelapse/internal/canvas"
)

// errSource replays a fixed script of events and errors in order.
type errSource struct {
	script []item
	i      int
}

func (s *errSource) Next() (canvas.Event, error) {
	if s.i >= len(s.script) {
		return canvas.Event{}, io.EOF
	}
	it := s.script[s.i]
	s.i++
	return it.ev, it.err
}

func TestEvents(t *testing.T) {
	evs := []canvas.Event{place(t0, 0, 0, 1), place(t0, 1, 1, 2)}
	src := Events(evs)
	for i := range evs {
		ev, err := src.Next()
		if err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
		if ev != evs[i] {
			t.Errorf("event %d = %+v", i, ev)
		}
	}
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestFiltered(t *testing.T) {
	evs := []canvas.Event{
		place(t0, 0, 0, 1),
		place(t0, 1, 0, 2),
		place(t0, 2, 0, 1),
	}
	src := Filtered(Events(evs), func(e canvas.Event) bool { return e.Index == 1 })
	var got []canvas.Event
	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, ev)
	}
	if len(got) != 2 || got[0].X != 0 || got[1].X != 2 {
		t.Errorf("filtered events = %+v", got)
	}

	if s := Filtered(Events(evs), nil); s == nil {
		t.Fatal("nil predicate returned nil source")
	}
}

func TestBufferedPreservesOrder(t *testing.T) {
	derr := &canvas.DataError{Line: 2, Field: "index", Err: canvas.ErrBadIndex}
	script := []item{
		{ev: place(t0, 0, 0, 1)},
		{err: derr},
		{ev: place(t0.Add(time.Second), 1, 1, 2)},
	}
	src := Buffered(&errSource{script: script}, 4)

	ev, err := src.Next()
	if err != nil || ev.X != 0 {
		t.Fatalf("first = %+v, %v", ev, err)
	}

	_, err = src.Next()
	var got *canvas.DataError
	if !errors.As(err, &got) || got.Line != 2 {
		t.Fatalf("second = %v, want the data error in position", err)
	}

	ev, err = src.Next()
	if err != nil || ev.X != 1 {
		t.Fatalf("third = %+v, %v", ev, err)
	}

	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestBufferedStopsOnFatalError(t *testing.T) {
	fatal := errors.New("disk on fire")
	script := []item{
		{ev: place(t0, 0, 0, 1)},
		{err: fatal},
		{ev: place(t0, 1, 1, 2)}, // never delivered
	}
	src := Buffered(&errSource{script: script}, 4)

	if _, err := src.Next(); err != nil {
		t.Fatal(err)
	}
	if _, err := src.Next(); !errors.Is(err, fatal) {
		t.Fatalf("expected fatal error, got %v", err)
	}
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("stream should end after a fatal error, got %v", err)
	}
}

func TestBufferedDrainsLargeStream(t *testing.T) {
	evs := make([]canvas.Event, 1000)
	for i := range evs {
		evs[i] = place(t0.Add(time.Duration(i)*time.Second), i%10, i/10%10, i%32)
	}
	src := Buffered(Events(evs), 8)
	for i := range evs {
		ev, err := src.Next()
		if err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
		if !ev.Time.Equal(evs[i].Time) {
			t.Fatalf("event %d out of order", i)
		}
	}
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}
