// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"fqdx-core/barcode"
	"fqdx-core/fastq"

	"fqdx/internal/cli"
	"fqdx/internal/cmdutil"
	"fqdx/internal/demux"
	"fqdx/internal/monitor"
	"fqdx/internal/pipeline"
	"fqdx/internal/runutil"
	"fqdx/internal/version"
	"fqdx/internal/writers"
)

// RunContext parses argv, runs the demultiplexing pipeline, and returns the
// process exit code: 0 ok, 2 usage error, 3 runtime error, 130 canceled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("fqdx", stderr)

	if len(argv) == 0 {
		fs.Usage()
		return 2
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.Version {
		fmt.Fprintf(stdout, "fqdx version %s\n", version.Version)
		return 0
	}

	log := cmdutil.NewLogger(stderr, opts.LogLevel, opts.Quiet)
	log = log.With().
		Str("run_id", uuid.NewString()[:8]).
		Str("sample", opts.Name).
		Logger()

	var table barcode.Table
	if len(opts.Barcodes) == 0 {
		table, err = detectTable(opts.R1[0], opts.OutputDir, &log)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
	} else {
		table, err = barcode.ParseAssignments(opts.Barcodes)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		routeToDir(table, opts.OutputDir)
	}
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
	}

	newClassifier, err := classifierFactory(opts, table)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	workers := runutil.EffectiveWorkers(opts.Threads)
	batchSize, maxPending, warns := runutil.ValidateBatching(opts.BatchSize, opts.MaxPending, workers)
	for _, w := range warns {
		cmdutil.Warnf(stderr, opts.Quiet, "%s", w)
	}

	source, err := fastq.NewPairSource(opts.R1, opts.R2, opts.ValidateIDs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer func() { _ = source.Close() }()

	var src pipeline.Source[fastq.Pair] = source
	var lenient *demux.LenientSource
	if opts.OnError == cli.OnErrorSkip {
		lenient = demux.NewLenientSource(source, &log)
		src = lenient
	}

	sink, err := writers.NewDemux(table, opts.Unmatched, len(opts.R2) == 0)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	met := monitor.NewMetrics(prometheus.NewRegistry())
	if opts.MonitorInterval > 0 {
		sampler, serr := monitor.NewSampler(opts.MonitorInterval, met, &log)
		if serr != nil {
			log.Warn().Err(serr).Msg("resource monitor unavailable")
		} else {
			go sampler.Run(ctx)
		}
	}

	policy := pipeline.Abort
	if opts.OnError == cli.OnErrorSkip {
		policy = pipeline.Skip
	}
	cfg := pipeline.Config{
		Workers:      workers,
		BatchSize:    batchSize,
		MaxPending:   maxPending,
		StallTimeout: opts.StallTimeout,
		OnError:      policy,
		Limiter:      pipeline.NewLimiter(workers),
		Observer:     met,
		Log:          &log,
	}

	pool := demux.NewPool(newClassifier)
	started := time.Now()
	rep, err := pipeline.Run[fastq.Pair, demux.Assignment](ctx, cfg, src, pool.Factory, sink)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		if writers.IsBrokenPipe(err) {
			// Downstream consumer closed early; not a failure.
			return 0
		}
		log.Error().Err(err).Msg("run aborted")
		return 3
	}

	counts := pool.Counts()
	ev := log.Info().
		Int64("pairs", rep.Records).
		Int64("batches", rep.Batches).
		Int64("matched", counts[demux.KeyMatched]).
		Int64("unmatched", counts[demux.KeyUnmatched]).
		Dur("elapsed", time.Since(started))
	if lenient != nil {
		ev = ev.Int64("skipped_records", lenient.Skipped())
	}
	ev.Msg("demultiplex complete")

	if opts.Stats != "" {
		st := demux.Statistics{Sample: opts.Name, Barcodes: table.Barcodes, Counts: counts}
		if err := st.SaveCSV(opts.Stats); err != nil {
			log.Error().Err(err).Msg("writing statistics failed")
			return 3
		}
		log.Info().Str("path", opts.Stats).Msg("statistics saved")
	}
	return 0
}

// detectTable samples the head of the first R1 file and routes every major
// header barcode to its own output pair under dir.
func detectTable(r1Path, dir string, log *zerolog.Logger) (barcode.Table, error) {
	rc, err := fastq.Open(r1Path)
	if err != nil {
		return barcode.Table{}, err
	}
	defer rc.Close()

	adapters, err := barcode.Detect(fastq.NewReader(rc), 0)
	if err != nil {
		return barcode.Table{}, err
	}
	if len(adapters) == 0 {
		return barcode.Table{}, fmt.Errorf("no index barcodes detected in %s", r1Path)
	}
	log.Info().Strs("barcodes", adapters).Msg("detected index barcodes")

	t := barcode.Table{Prefix: make(map[string]string, len(adapters))}
	for _, bc := range adapters {
		t.Barcodes = append(t.Barcodes, bc)
		t.Prefix[bc] = filepath.Join(dir, bc)
	}
	return t, nil
}

// routeToDir fills empty prefixes with <dir>/<barcode>, so bare --barcode
// specs land in the output directory instead of being discarded.
func routeToDir(t barcode.Table, dir string) {
	if dir == "" {
		return
	}
	for _, bc := range t.Barcodes {
		if t.Prefix[bc] == "" {
			t.Prefix[bc] = filepath.Join(dir, bc)
		}
	}
}

// classifierFactory validates the classifier options once and returns the
// per-slot constructor.
func classifierFactory(opts cli.Options, table barcode.Table) (func() demux.Classifier, error) {
	switch opts.Mode {
	case cli.ModeIndex:
		return func() demux.Classifier {
			return barcode.NewIndex(table.Barcodes, opts.ErrorRate)
		}, nil
	default:
		if _, err := barcode.NewInline(table.Barcodes, opts.ErrorRate, opts.Score, opts.Penalty); err != nil {
			return nil, err
		}
		return func() demux.Classifier {
			c, _ := barcode.NewInline(table.Barcodes, opts.ErrorRate, opts.Score, opts.Penalty)
			return c
		}, nil
	}
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
