package render

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Sink errors terminate the run; frames already written stay on disk.
var (
	// ErrExists indicates an output path that already exists while
	// overwrite protection is on.
	ErrExists = errors.New("render: output already exists")

	// ErrUnsupportedFormat indicates an output extension with no encoder.
	ErrUnsupportedFormat = errors.New("render: unsupported output format")
)

// SinkError wraps a write failure with the path it happened on.
type SinkError struct {
	Path string
	Err  error
}

func (e *SinkError) Error() string { return fmt.Sprintf("sink %s: %v", e.Path, e.Err) }
func (e *SinkError) Unwrap() error { return e.Err }

// Sink consumes frames strictly in emission order, one at a time.
type Sink interface {
	Write(f *Frame) error
	Close() error
}

// FileSink writes each frame as a numbered PNG next to the requested path:
// "out/canvas.png" becomes "out/canvas_0000.png", "out/canvas_0001.png", ...
type FileSink struct {
	base      string
	ext       string
	n         int
	noClobber bool
}

// NewFileSink validates the output path. Only .png is supported.
func NewFileSink(path string, noClobber bool) (*FileSink, error) {
	ext := filepath.Ext(path)
	if strings.ToLower(ext) != ".png" {
		return nil, &SinkError{Path: path, Err: ErrUnsupportedFormat}
	}
	return &FileSink{
		base:      strings.TrimSuffix(path, ext),
		ext:       ext,
		noClobber: noClobber,
	}, nil
}

func (s *FileSink) Write(f *Frame) error {
	path := fmt.Sprintf("%s_%04d%s", s.base, s.n, s.ext)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if s.noClobber {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return &SinkError{Path: path, Err: ErrExists}
		}
		return &SinkError{Path: path, Err: err}
	}
	if err := png.Encode(file, f.ToImage()); err != nil {
		file.Close()
		return &SinkError{Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &SinkError{Path: path, Err: err}
	}
	s.n++
	return nil
}

func (s *FileSink) Close() error { return nil }

// Frames reports how many frames have been written.
func (s *FileSink) Frames() int { return s.n }

// StreamSink writes raw row-major RGBA bytes to a writer with no framing.
// The consumer must know width and height out of band, which is exactly
// what piping into video tooling expects.
type StreamSink struct {
	w *bufio.Writer
}

func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: bufio.NewWriterSize(w, 1<<16)}
}

func (s *StreamSink) Write(f *Frame) error {
	if _, err := s.w.Write(f.Pix()); err != nil {
		return &SinkError{Path: "stream", Err: err}
	}
	return nil
}

func (s *StreamSink) Close() error {
	if err := s.w.Flush(); err != nil {
		return &SinkError{Path: "stream", Err: err}
	}
	return nil
}

// DryRunSink counts frames and reports what would have been written.
type DryRunSink struct {
	Logger *slog.Logger
	Count  int
}

func (s *DryRunSink) Write(f *Frame) error {
	s.Count++
	if s.Logger != nil {
		s.Logger.Info("dry run: would write frame",
			"frame", s.Count-1, "time", f.Time, "size", fmt.Sprintf("%dx%d", f.Width(), f.Height()))
	}
	return nil
}

func (s *DryRunSink) Close() error { return nil }
