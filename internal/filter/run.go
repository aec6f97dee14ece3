package filter

import (
	"bufio"
	"errors"
	"io"
	"log/slog"

	"github.com/san-kum/pixelapse/internal/canvas"
	"github.com/san-kum/pixelapse/internal/parser"
)

// Result reports how many entries passed a standalone filter run.
type Result struct {
	Passed int
	Total  int
	// Skipped counts malformed lines dropped under the lenient policy.
	Skipped int
}

// Run streams a log through the filter, writing passing lines verbatim.
// With strict set, the first malformed line aborts the run; otherwise
// malformed lines are dropped and counted.
func Run(r io.Reader, w io.Writer, f *Filter, strict bool, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var res Result
	sc := parser.NewScanner(r)
	bw := bufio.NewWriter(w)
	for {
		ev, err := sc.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var derr *canvas.DataError
			if errors.As(err, &derr) && !strict {
				res.Total++
				res.Skipped++
				logger.Warn("skipping malformed line", "line", derr.Line, "err", derr.Err)
				continue
			}
			return res, err
		}
		res.Total++
		if f.Match(ev) {
			res.Passed++
			if _, err := bw.WriteString(sc.Text()); err != nil {
				return res, err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return res, err
			}
		}
	}
	return res, bw.Flush()
}
