// Command colorcluster reduces an image (or a CSV of points) to k clusters.
//
//	colorcluster -k 6 -palette okabe-ito -o out.png photo.jpg
//	colorcluster -k 3 -csv -header points.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yyyoichi/colorcluster"
	"github.com/yyyoichi/colorcluster/internal/dataset"
	"github.com/yyyoichi/colorcluster/palette"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "colorcluster:", err)
		os.Exit(1)
	}
}

type config struct {
	k           int
	seed        uint64
	space       string
	palette     string
	distinct    bool
	maxIter     int
	epsilon     float64
	convergence string
	workers     int
	maxSide     int
	initial     string
	pal         *palette.Palette

	out    string
	labels string
	colors string
	trace  string

	csv     bool
	header  bool
	comma   string
	columns string

	cacheDir string
	interval time.Duration
	verbose  bool
}

func parseFlags(args []string, stderr io.Writer) (*config, string, error) {
	var cfg config
	fs := flag.NewFlagSet("colorcluster", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.k, "k", 6, "number of clusters")
	fs.Uint64Var(&cfg.seed, "seed", colorcluster.DefaultSeed, "seed of the k-means++ random stream")
	fs.StringVar(&cfg.space, "space", "rgb", "color space to cluster in: rgb, yuv or lab")
	fs.StringVar(&cfg.palette, "palette", "", "repaint clusters with a palette: "+strings.Join(palette.Names(), ", ")+" or #hex,#hex,...")
	fs.BoolVar(&cfg.distinct, "distinct", false, "give every cluster a different palette color while possible")
	fs.IntVar(&cfg.maxIter, "max-iter", colorcluster.DefaultMaxIterations, "iteration cap")
	fs.Float64Var(&cfg.epsilon, "epsilon", 0, "inertia change that counts as converged (implies -convergence epsilon)")
	fs.StringVar(&cfg.convergence, "convergence", "exact", "convergence policy: exact, epsilon or assignments")
	fs.IntVar(&cfg.workers, "workers", 0, "assignment goroutines, 0 for GOMAXPROCS")
	fs.IntVar(&cfg.maxSide, "max-side", 0, "fit on a copy scaled to this longer side, 0 to disable")
	fs.StringVar(&cfg.initial, "init", "", "initial centroids, e.g. \"0,0,0;255,0,0\" (skips k-means++)")
	fs.StringVar(&cfg.out, "o", "", "output image (.png, .jpg, .gif, .tiff, .bmp)")
	fs.StringVar(&cfg.labels, "labels", "", "write the label map to this file")
	fs.StringVar(&cfg.colors, "colors", "", "write cluster colors as JSON to this file")
	fs.StringVar(&cfg.trace, "trace", "", "write an HTML chart of the inertia per iteration to this file")
	fs.BoolVar(&cfg.csv, "csv", false, "input is a CSV of points instead of an image")
	fs.BoolVar(&cfg.header, "header", false, "CSV input has a header row")
	fs.StringVar(&cfg.comma, "comma", ",", "CSV delimiter")
	fs.StringVar(&cfg.columns, "columns", "", "CSV columns to use, e.g. 1,2,3 (0-based)")
	fs.StringVar(&cfg.cacheDir, "cache-dir", filepath.Join(os.TempDir(), "colorcluster_http_cache"), "cache directory for remote inputs")
	fs.DurationVar(&cfg.interval, "fetch-interval", 250*time.Millisecond, "minimum time between remote requests")
	fs.BoolVar(&cfg.verbose, "v", false, "log every iteration")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: colorcluster [flags] <image path or URL | csv path>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, "", errors.New("expected exactly one input")
	}
	return &cfg, fs.Arg(0), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, input, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts, err := cfg.options(logger)
	if err != nil {
		return err
	}
	c, err := colorcluster.New(opts...)
	if err != nil {
		return err
	}

	if cfg.csv {
		return runCSV(ctx, cfg, c, input, stdout, logger)
	}
	return runImage(ctx, cfg, c, input, logger)
}

func (cfg *config) options(logger *slog.Logger) ([]colorcluster.Option, error) {
	space, err := colorcluster.ParseSpace(cfg.space)
	if err != nil {
		return nil, err
	}
	conv, err := colorcluster.ParseConvergence(cfg.convergence)
	if err != nil {
		return nil, err
	}
	opts := []colorcluster.Option{
		colorcluster.WithSeed(cfg.seed),
		colorcluster.WithMaxIterations(cfg.maxIter),
		colorcluster.WithConvergence(conv),
		colorcluster.WithWorkers(cfg.workers),
		colorcluster.WithMaxSide(cfg.maxSide),
		colorcluster.WithColorSpace(space),
		colorcluster.WithLogger(logger),
	}
	if cfg.epsilon > 0 {
		opts = append(opts, colorcluster.WithEpsilon(cfg.epsilon))
	}
	if cfg.trace != "" {
		opts = append(opts, colorcluster.WithTrace())
	}
	if cfg.palette != "" {
		p, err := palette.Lookup(cfg.palette)
		if err != nil {
			return nil, err
		}
		cfg.pal = &p
		if cfg.distinct {
			opts = append(opts, colorcluster.WithDistinctPalette(p))
		} else {
			opts = append(opts, colorcluster.WithPalette(p))
		}
	}
	if cfg.initial != "" {
		initial, err := parsePoints(cfg.initial)
		if err != nil {
			return nil, fmt.Errorf("-init: %w", err)
		}
		opts = append(opts, colorcluster.WithInitialCentroids(initial))
	}
	return opts, nil
}

// parsePoints reads "1,2,3;4,5,6" into points.
func parsePoints(s string) ([]colorcluster.Point, error) {
	var points []colorcluster.Point
	for _, group := range strings.Split(s, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		var p colorcluster.Point
		for _, f := range strings.Split(group, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, err
			}
			p = append(p, v)
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, errors.New("no points")
	}
	return points, nil
}

func runImage(ctx context.Context, cfg *config, c *colorcluster.Clusterer, input string, logger *slog.Logger) error {
	client := newFetchClient(cfg.cacheDir, cfg.interval)
	img, format, err := loadImage(ctx, client, input)
	if err != nil {
		return err
	}
	logger.Info("decoded image",
		"input", input,
		"format", format,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
	)

	start := time.Now()
	q, err := c.Quantize(ctx, img, cfg.k)
	if err != nil {
		return err
	}
	logger.Info("quantized",
		"k", cfg.k,
		"iterations", q.Result.Iterations,
		"converged", q.Result.Converged,
		"inertia", q.Result.Inertia,
		"emptyClusters", q.Result.EmptyClusters,
		"elapsed", time.Since(start),
	)

	if cfg.out != "" {
		if err := writeImage(cfg.out, q.Image, cfg.k); err != nil {
			return err
		}
		logger.Info("wrote image", "path", cfg.out)
	}
	if cfg.labels != "" {
		if err := writeLabels(cfg.labels, q); err != nil {
			return err
		}
		logger.Info("wrote labels", "path", cfg.labels)
	}
	if cfg.colors != "" {
		if err := writeColors(cfg.colors, newColorReport(cfg, q)); err != nil {
			return err
		}
		logger.Info("wrote colors", "path", cfg.colors)
	}
	if cfg.trace != "" {
		if err := writeTrace(cfg.trace, input, q.Result.Trace); err != nil {
			return err
		}
		logger.Info("wrote trace", "path", cfg.trace)
	}
	return nil
}

func runCSV(ctx context.Context, cfg *config, c *colorcluster.Clusterer, input string, stdout io.Writer, logger *slog.Logger) error {
	var opts []dataset.Option
	if cfg.header {
		opts = append(opts, dataset.WithHeader())
	}
	if cfg.comma != "" && cfg.comma != "," {
		r := []rune(cfg.comma)
		if len(r) != 1 {
			return fmt.Errorf("-comma must be a single character, got %q", cfg.comma)
		}
		opts = append(opts, dataset.WithComma(r[0]))
	}
	if cfg.columns != "" {
		var cols []int
		for _, f := range strings.Split(cfg.columns, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return fmt.Errorf("-columns: %w", err)
			}
			cols = append(cols, n)
		}
		opts = append(opts, dataset.WithColumns(cols...))
	}

	data, err := dataset.ReadFile(input, opts...)
	if err != nil {
		return err
	}
	res, err := c.Cluster(ctx, data, cfg.k)
	if err != nil {
		return err
	}
	logger.Info("clustered",
		"points", len(data),
		"k", cfg.k,
		"iterations", res.Iterations,
		"converged", res.Converged,
		"inertia", res.Inertia,
	)
	if err := writeCSVResult(stdout, res); err != nil {
		return err
	}
	if cfg.colors != "" {
		if err := writeColors(cfg.colors, newPointReport(res)); err != nil {
			return err
		}
	}
	if cfg.trace != "" {
		if err := writeTrace(cfg.trace, input, res.Trace); err != nil {
			return err
		}
	}
	return nil
}
