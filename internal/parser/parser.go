// Package parser turns raw pxls placement logs into event streams.
//
// A log line is six tab-separated fields:
//
//	2022-01-09 04:31:12,327<TAB>user<TAB>x<TAB>y<TAB>index<TAB>action
//
// with a millisecond-precision timestamp. The scanner is single-pass and
// forward-only; it never buffers more than one line.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/pixelapse/internal/canvas"
)

// TimeLayout is the timestamp format used by pxls logs.
const TimeLayout = "2006-01-02 15:04:05,000"

const fieldCount = 6

// Scanner reads one event per line from a log. Malformed lines surface as
// *canvas.DataError carrying the line number, so callers can choose between
// aborting and skipping.
type Scanner struct {
	sc   *bufio.Scanner
	line int
	raw  string
}

// NewScanner wraps r in a streaming log scanner.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	return &Scanner{sc: sc}
}

// Next returns the next event. It reports io.EOF when the log is exhausted.
// Blank lines are skipped.
func (s *Scanner) Next() (canvas.Event, error) {
	for {
		if !s.sc.Scan() {
			if err := s.sc.Err(); err != nil {
				return canvas.Event{}, err
			}
			return canvas.Event{}, io.EOF
		}
		s.line++
		s.raw = strings.TrimRight(s.sc.Text(), "\r")
		if s.raw == "" {
			continue
		}
		return ParseLine(s.raw, s.line)
	}
}

// Line returns the 1-based number of the most recently read line.
func (s *Scanner) Line() int { return s.line }

// Text returns the raw text of the most recently read line, without the
// trailing newline. Useful for passing lines through verbatim.
func (s *Scanner) Text() string { return s.raw }

// ParseLine parses a single log line. line is recorded on the event and on
// any returned error.
func ParseLine(raw string, line int) (canvas.Event, error) {
	fields := strings.Split(raw, "\t")
	if len(fields) != fieldCount {
		return canvas.Event{}, &canvas.DataError{
			Line:  line,
			Field: "line",
			Value: raw,
			Err:   fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields)),
		}
	}

	t, err := time.Parse(TimeLayout, fields[0])
	if err != nil {
		return canvas.Event{}, &canvas.DataError{Line: line, Field: "timestamp", Value: fields[0], Err: err}
	}

	x, err := strconv.Atoi(fields[2])
	if err != nil {
		return canvas.Event{}, &canvas.DataError{Line: line, Field: "x", Value: fields[2], Err: err}
	}
	y, err := strconv.Atoi(fields[3])
	if err != nil {
		return canvas.Event{}, &canvas.DataError{Line: line, Field: "y", Value: fields[3], Err: err}
	}

	idx := canvas.NoIndex
	if f := fields[4]; f != "" && f != "-1" {
		idx, err = strconv.Atoi(f)
		if err != nil {
			return canvas.Event{}, &canvas.DataError{Line: line, Field: "index", Value: f, Err: err}
		}
	}

	kind, ok := canvas.ParseActionKind(fields[5])
	if !ok {
		return canvas.Event{}, &canvas.DataError{
			Line:  line,
			Field: "action",
			Value: fields[5],
			Err:   fmt.Errorf("unknown action"),
		}
	}

	return canvas.Event{
		Time:  t,
		User:  fields[1],
		X:     x,
		Y:     y,
		Index: idx,
		Kind:  kind,
		Line:  line,
	}, nil
}

// FormatLine renders an event back into its log representation.
func FormatLine(e canvas.Event) string {
	idx := ""
	if e.HasIndex() {
		idx = strconv.Itoa(e.Index)
	}
	return strings.Join([]string{
		e.Time.Format(TimeLayout),
		e.User,
		strconv.Itoa(e.X),
		strconv.Itoa(e.Y),
		idx,
		e.Kind.String(),
	}, "\t")
}
