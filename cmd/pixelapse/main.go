package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/pixelapse/internal/canvas"
	"github.com/san-kum/pixelapse/internal/config"
	"github.com/san-kum/pixelapse/internal/filter"
	"github.com/san-kum/pixelapse/internal/palette"
	"github.com/san-kum/pixelapse/internal/parser"
	"github.com/san-kum/pixelapse/internal/render"
	"github.com/san-kum/pixelapse/internal/stats"
	"github.com/san-kum/pixelapse/internal/style"
	"github.com/san-kum/pixelapse/internal/tui"
)

var (
	verbose   bool
	dryRun    bool
	noClobber bool

	src         string
	dst         string
	width       int
	height      int
	regionVals  []int
	styleName   string
	stepStr     string
	screenshot  bool
	noFinal     bool
	paletteFile string
	bgFile      string
	bgColor     []int
	bgScale     bool
	skipErrors  bool
	bufferDepth int
	configFile  string
	preset      string

	// filter clause flags, shared by render and filter
	afterStr  string
	beforeStr string
	colors    []int
	fltRegion []int
	actions   []string
	users     []string
	userSrc   string
	strict    bool

	statsMode    string
	statsPlot    bool
	framesTarget int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pixelapse",
		Short: "replay pxls placement logs into timelapses and statistics",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "validate and report without writing")
	rootCmd.PersistentFlags().BoolVar(&noClobber, "no-clobber", false, "refuse to overwrite existing files")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames or stream raw RGBA to stdout",
		Long: `Render a placement log as a timelapse or a single screenshot.
With --dst, frames are written as numbered PNG files; without it, raw
row-major RGBA bytes stream to stdout for piping into video tooling.`,
		RunE: runRender,
	}
	renderCmd.Flags().StringVarP(&src, "src", "s", "", "input log file (- for stdin)")
	renderCmd.Flags().StringVarP(&dst, "dst", "d", "", "output image path (default raw stdout)")
	renderCmd.Flags().IntVar(&width, "width", 0, "canvas width")
	renderCmd.Flags().IntVar(&height, "height", 0, "canvas height")
	renderCmd.Flags().IntSliceVar(&regionVals, "region", nil, "render window x1,y1,x2,y2")
	renderCmd.Flags().StringVar(&styleName, "style", "normal",
		"visualization style ("+strings.Join(style.Styles(), ", ")+")")
	renderCmd.Flags().StringVar(&stepStr, "step", "", "time between frames (e.g. 5m)")
	renderCmd.Flags().BoolVar(&screenshot, "screenshot", false, "render only the final frame")
	renderCmd.Flags().BoolVar(&noFinal, "no-final", false, "suppress the final frame")
	renderCmd.Flags().StringVarP(&paletteFile, "palette", "p", "", "palette file (.json .gpl .aco .csv .txt)")
	renderCmd.Flags().StringVarP(&bgFile, "bg", "b", "", "background image file")
	renderCmd.Flags().IntSliceVar(&bgColor, "bg-color", nil, "background color r,g,b,a")
	renderCmd.Flags().BoolVar(&bgScale, "bg-scale", false, "scale a mismatched background to the canvas")
	renderCmd.Flags().BoolVar(&skipErrors, "skip-errors", false, "skip bad events instead of aborting")
	renderCmd.Flags().IntVar(&bufferDepth, "buffer", config.DefaultBuffer, "parse-ahead queue depth")
	renderCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	renderCmd.Flags().StringVar(&preset, "preset", "", "canvas preset ("+strings.Join(config.ListPresets(), ", ")+")")
	addFilterFlags(renderCmd)
	_ = renderCmd.MarkFlagRequired("src")

	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "filter a log into a reduced log",
		RunE:  runFilter,
	}
	filterCmd.Flags().StringVarP(&src, "src", "s", "", "input log file (default stdin)")
	filterCmd.Flags().StringVarP(&dst, "dst", "d", "", "output log file (default stdout)")
	filterCmd.Flags().BoolVar(&strict, "strict", false, "abort on malformed lines")
	addFilterFlags(filterCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "summarize a log (colors, users, activity)",
		RunE:  runStats,
	}
	statsCmd.Flags().StringVarP(&src, "src", "s", "", "input log file (- for stdin)")
	statsCmd.Flags().StringVarP(&dst, "dst", "d", "", "output file (.csv); default styled terminal")
	statsCmd.Flags().StringVarP(&statsMode, "mode", "m", "all", "summary mode (all, color, canvas, leaderboard)")
	statsCmd.Flags().BoolVar(&statsPlot, "plot", false, "plot hourly activity")
	statsCmd.Flags().StringVarP(&paletteFile, "palette", "p", "", "palette file for color swatches")
	addFilterFlags(statsCmd)
	_ = statsCmd.MarkFlagRequired("src")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "replay a log interactively in the terminal",
		RunE:  runPreview,
	}
	previewCmd.Flags().StringVarP(&src, "src", "s", "", "input log file")
	previewCmd.Flags().IntVar(&width, "width", 0, "canvas width")
	previewCmd.Flags().IntVar(&height, "height", 0, "canvas height")
	previewCmd.Flags().StringVar(&styleName, "style", "normal", "visualization style")
	previewCmd.Flags().StringVarP(&paletteFile, "palette", "p", "", "palette file")
	previewCmd.Flags().IntVar(&framesTarget, "frames", 120, "number of preview frames")
	previewCmd.Flags().StringVar(&preset, "preset", "", "canvas preset")
	_ = previewCmd.MarkFlagRequired("src")

	rootCmd.AddCommand(renderCmd, filterCmd, statsCmd, previewCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&afterStr, "after", "", "keep entries at or after this time (inclusive)")
	cmd.Flags().StringVar(&beforeStr, "before", "", "keep entries at or before this time (inclusive)")
	cmd.Flags().IntSliceVar(&colors, "color", nil, "keep entries with these palette indices")
	cmd.Flags().IntSliceVar(&fltRegion, "filter-region", nil, "keep entries inside x1,y1,x2,y2")
	cmd.Flags().StringSliceVar(&actions, "action", nil, "keep entries with these actions")
	cmd.Flags().StringSliceVar(&users, "user", nil, "keep entries from these users or keys")
	cmd.Flags().StringVar(&userSrc, "user-src", "", "newline-delimited file of users or keys")
}

func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// buildFilter assembles the filter clauses from flags. Entries longer than
// 64 characters are treated as log keys rather than plain identifiers.
func buildFilter() (*filter.Filter, error) {
	f := &filter.Filter{Colors: colors}
	parseTime := func(s, flag string) (*time.Time, error) {
		if s == "" {
			return nil, nil
		}
		for _, layout := range []string{parser.TimeLayout, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return &t, nil
			}
		}
		return nil, fmt.Errorf("bad --%s time %q", flag, s)
	}
	var err error
	if f.After, err = parseTime(afterStr, "after"); err != nil {
		return nil, err
	}
	if f.Before, err = parseTime(beforeStr, "before"); err != nil {
		return nil, err
	}
	if len(fltRegion) > 0 {
		if len(fltRegion) != 4 {
			return nil, fmt.Errorf("--filter-region needs 4 values")
		}
		r := canvas.NewRegion(fltRegion[0], fltRegion[1], fltRegion[2], fltRegion[3])
		f.Region = &r
	}
	for _, a := range actions {
		k, ok := canvas.ParseActionKind(a)
		if !ok {
			return nil, fmt.Errorf("unknown action %q", a)
		}
		f.Kinds = append(f.Kinds, k)
	}
	all := append([]string{}, users...)
	if userSrc != "" {
		uf, err := os.Open(userSrc)
		if err != nil {
			return nil, err
		}
		loaded, err := filter.LoadUserSet(uf)
		uf.Close()
		if err != nil {
			return nil, err
		}
		all = append(all, loaded...)
	}
	for _, u := range all {
		if len(u) > 64 {
			f.Keys = append(f.Keys, u)
		} else {
			f.Users = append(f.Users, u)
		}
	}
	return f, nil
}

func openSrc() (io.ReadCloser, error) {
	if src == "" || src == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(src)
}

func loadPalette() (palette.Palette, error) {
	if paletteFile == "" {
		return palette.Default(), nil
	}
	return palette.Load(paletteFile)
}

// buildConfig folds preset, config file and command-line flags (in that
// order of precedence, flags last) into one validated render config.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	set := cmd.Flags().Changed
	if set("width") {
		cfg.Width = width
	}
	if set("height") {
		cfg.Height = height
	}
	if set("region") {
		cfg.Region = regionVals
	}
	if set("style") {
		cfg.Style = styleName
	}
	if set("step") {
		cfg.Step = stepStr
	}
	if set("screenshot") {
		cfg.Screenshot = screenshot
	}
	if set("no-final") {
		cfg.SuppressFinal = noFinal
	}
	if set("palette") {
		cfg.Palette = paletteFile
	}
	if set("bg") {
		cfg.Background = bgFile
	}
	if set("bg-color") {
		cfg.BackgroundColor = nil
		for _, v := range bgColor {
			cfg.BackgroundColor = append(cfg.BackgroundColor, uint8(v))
		}
	}
	if set("bg-scale") {
		cfg.BackgroundScale = bgScale
	}
	if set("dst") {
		cfg.Output = dst
	}
	if set("skip-errors") {
		cfg.SkipErrors = skipErrors
	}
	if set("buffer") {
		cfg.BufferDepth = bufferDepth
	}
	cfg.NoClobber = cfg.NoClobber || noClobber
	cfg.DryRun = cfg.DryRun || dryRun
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	pal := palette.Default()
	if cfg.Palette != "" {
		if pal, err = palette.Load(cfg.Palette); err != nil {
			return err
		}
	}

	// configuration is resolved fully before any replay begins
	w, h := cfg.Width, cfg.Height
	cv, res, err := buildCanvas(cfg, pal, &w, &h)
	if err != nil {
		return err
	}

	var sink render.Sink
	switch {
	case cfg.DryRun:
		sink = &render.DryRunSink{Logger: newReportLogger()}
	case cfg.Output == "":
		sink = render.NewStreamSink(os.Stdout)
	default:
		sink, err = render.NewFileSink(cfg.Output, cfg.NoClobber)
		if err != nil {
			return err
		}
	}

	f, err := buildFilter()
	if err != nil {
		return err
	}
	in, err := openSrc()
	if err != nil {
		return err
	}
	defer in.Close()

	var source render.EventSource = parser.NewScanner(in)
	if !f.Empty() {
		source = render.Filtered(source, f.Match)
	}
	source = render.Buffered(source, cfg.BufferDepth)

	policy := render.AbortOnError
	if cfg.SkipErrors {
		policy = render.SkipOnError
	}
	// with neither a step nor --screenshot, only the final frame makes sense
	sched, err := render.NewScheduler(cv, res, sink, render.Options{
		Step:          cfg.StepDuration(),
		Screenshot:    cfg.Screenshot || cfg.Step == "",
		SuppressFinal: cfg.SuppressFinal,
		Window:        windowFromConfig(cfg, w, h),
		Policy:        policy,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	logger.Info("rendering", "style", cfg.Style, "canvas", fmt.Sprintf("%dx%d", w, h))
	rep, err := sched.Run(source)
	if err != nil {
		return err
	}
	reportRun(rep)
	return nil
}

func windowFromConfig(cfg *config.Config, w, h int) *canvas.Region {
	if len(cfg.Region) == 0 {
		return nil
	}
	r, err := canvas.RegionFromSlice(cfg.Region, w, h)
	if err != nil {
		return nil
	}
	return &r
}

// buildCanvas resolves canvas size, seeds the background and prepares the
// resolver.
func buildCanvas(cfg *config.Config, pal palette.Palette, w, h *int) (*canvas.Canvas, *style.Resolver, error) {
	st, err := style.Parse(cfg.Style)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Background != "" {
		imgDec, err := render.DecodeImage(cfg.Background)
		if err != nil {
			return nil, nil, err
		}
		if *w <= 0 || *h <= 0 {
			*w = imgDec.Bounds().Dx()
			*h = imgDec.Bounds().Dy()
		}
		fitted, err := render.FitBackground(imgDec, *w, *h, cfg.BackgroundScale)
		if err != nil {
			return nil, nil, err
		}
		cv, err := canvas.New(*w, *h, len(pal))
		if err != nil {
			return nil, nil, err
		}
		if err := cv.Seed(fitted, pal.Index); err != nil {
			return nil, nil, err
		}
		return cv, &style.Resolver{Style: st, Palette: pal}, nil
	}

	cv, err := canvas.New(*w, *h, len(pal))
	if err != nil {
		return nil, nil, err
	}
	if len(cfg.BackgroundColor) == 4 {
		c := cfg.BackgroundColor
		cv.SeedColor(color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]})
	}
	return cv, &style.Resolver{Style: st, Palette: pal}, nil
}

func newReportLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func reportRun(rep *render.Report) {
	fmt.Fprintf(os.Stderr, "events %d, applied %d, skipped %d, frames %d\n",
		rep.Events, rep.Applied, rep.Skipped, rep.Frames)
	for _, err := range rep.DataErrors {
		fmt.Fprintf(os.Stderr, "  %v\n", err)
	}
}

func runFilter(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	f, err := buildFilter()
	if err != nil {
		return err
	}
	in, err := openSrc()
	if err != nil {
		return err
	}
	defer in.Close()

	var out io.WriteCloser = os.Stdout
	if dst != "" && !dryRun {
		flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		if noClobber {
			flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
		}
		out, err = os.OpenFile(dst, flags, 0o644)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	if dryRun {
		out = nopWriteCloser{io.Discard}
	}

	res, err := filter.Run(in, out, f, strict, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d/%d entries passed", res.Passed, res.Total)
	if res.Skipped > 0 {
		fmt.Fprintf(os.Stderr, " (%d malformed lines skipped)", res.Skipped)
	}
	fmt.Fprintln(os.Stderr)
	return nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func runStats(cmd *cobra.Command, args []string) error {
	mode, err := stats.ParseMode(statsMode)
	if err != nil {
		return err
	}
	f, err := buildFilter()
	if err != nil {
		return err
	}
	pal, err := loadPalette()
	if err != nil {
		return err
	}
	in, err := openSrc()
	if err != nil {
		return err
	}
	defer in.Close()

	st, err := stats.Collect(parser.NewScanner(in), f)
	if err != nil {
		return err
	}

	if dst == "" {
		return stats.WriteTerminal(os.Stdout, st, pal, mode, statsPlot)
	}
	if strings.ToLower(filepath.Ext(dst)) != ".csv" {
		return fmt.Errorf("stats output must be .csv, got %q", dst)
	}
	if dryRun {
		return stats.WriteCSV(io.Discard, st, mode)
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if noClobber {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	out, err := os.OpenFile(dst, flags, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()
	return stats.WriteCSV(out, st, mode)
}

func runPreview(cmd *cobra.Command, args []string) error {
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset %q", preset)
		}
		if width == 0 {
			width = p.Width
		}
		if height == 0 {
			height = p.Height
		}
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("preview needs --width and --height (or --preset)")
	}
	st, err := style.Parse(styleName)
	if err != nil {
		return err
	}
	pal, err := loadPalette()
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	// the preview needs the log span up front to pick a step, so it
	// loads events into memory; replay itself still goes through the
	// scheduler
	sc := parser.NewScanner(in)
	var events []canvas.Event
	for {
		ev, err := sc.Next()
		if err != nil {
			var derr *canvas.DataError
			if errors.As(err, &derr) {
				continue
			}
			break
		}
		events = append(events, ev)
	}
	in.Close()
	if len(events) == 0 {
		return fmt.Errorf("no events in %s", src)
	}

	span := events[len(events)-1].Time.Sub(events[0].Time)
	if framesTarget < 2 {
		framesTarget = 2
	}
	step := span / time.Duration(framesTarget)
	if step <= 0 {
		step = time.Second
	}

	cv, err := canvas.New(width, height, len(pal))
	if err != nil {
		return err
	}
	rec := tui.NewRecorder()
	sched, err := render.NewScheduler(cv, &style.Resolver{Style: st, Palette: pal}, rec, render.Options{
		Step:   step,
		Policy: render.SkipOnError,
	})
	if err != nil {
		return err
	}
	if _, err := sched.Run(render.Events(events)); err != nil {
		return err
	}
	return tui.Run(filepath.Base(src), rec)
}
