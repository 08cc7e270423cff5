// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"fqdx/internal/version"
)

// Demultiplexing modes.
const (
	ModeInline = "inline"
	ModeIndex  = "index"
)

// Failure policies.
const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	R1          []string
	R2          []string
	ValidateIDs bool

	// Barcodes
	Barcodes  []string
	Unmatched string
	OutputDir string
	Mode      string
	ErrorRate float64
	Score     int
	Penalty   int

	// Statistics
	Stats string
	Name  string

	// Performance
	Threads      int
	BatchSize    int
	MaxPending   int
	StallTimeout time.Duration

	// Behavior
	OnError string

	// Observability
	MonitorInterval time.Duration
	LogLevel        string
	Quiet           bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help writing
// to out.
func NewFlagSet(name string, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out,
			`%s: demultiplex paired-end FASTQ by barcode

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *pflag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input
	fs.StringArrayVar(&opt.R1, "r1", nil, "R1 FASTQ file(s), .gz or plain (repeatable) [*]")
	fs.StringArrayVar(&opt.R2, "r2", nil, "R2 FASTQ file(s), parallel to --r1; omit for single-end (repeatable)")
	fs.BoolVar(&opt.ValidateIDs, "validate-ids", false, "require mate identifiers to agree")

	// Barcodes
	fs.StringArrayVar(&opt.Barcodes, "barcode", nil, "BARCODE=PREFIX output assignment (repeatable) [*]")
	fs.StringVar(&opt.Unmatched, "unmatched", "", "output prefix for unmatched read pairs")
	fs.StringVar(&opt.OutputDir, "output-dir", "", "directory for per-barcode outputs; with --mode index and no --barcode, barcodes are detected from the input")
	fs.StringVar(&opt.Mode, "mode", ModeInline, "barcode location: inline | index")
	fs.Float64Var(&opt.ErrorRate, "error-rate", 0, "max error rate per barcode (0 = mode default: inline 0.2, index 0.1)")
	fs.IntVar(&opt.Score, "score", 0, "alignment score per matching base (0 = default 1)")
	fs.IntVar(&opt.Penalty, "penalty", 0, "alignment penalty per mismatched base (0 = default 10)")

	// Statistics
	fs.StringVar(&opt.Stats, "stats", "", "CSV file for per-barcode statistics")
	fs.StringVar(&opt.Name, "name", "", "sample name recorded in statistics")

	// Performance. Gzip decompression runs on the reader stage and is not
	// counted against --threads; tune them independently.
	fs.IntVar(&opt.Threads, "threads", 0, "worker threads (0 = all CPUs)")
	fs.IntVar(&opt.BatchSize, "batch-size", 0, "read pairs per batch (0 = default)")
	fs.IntVar(&opt.MaxPending, "max-pending", 0, "max buffered out-of-order results (0 = 4x threads)")
	fs.DurationVar(&opt.StallTimeout, "stall-timeout", 0, "abort when a batch blocks output this long (0 = off)")

	// Behavior
	fs.StringVar(&opt.OnError, "on-error", OnErrorAbort, "per-record/per-batch failure policy: abort | skip")

	// Observability
	fs.DurationVar(&opt.MonitorInterval, "monitor-interval", 0, "resource monitor sampling interval (0 = off)")
	fs.StringVar(&opt.LogLevel, "log-level", "info", "log level: debug | info | warn | error")
	fs.BoolVarP(&opt.Quiet, "quiet", "q", false, "suppress warnings and progress logging")

	fs.BoolVarP(&opt.Version, "version", "v", false, "print version and exit")
	fs.BoolVarP(&help, "help", "h", false, "show this help message")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, pflag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	// Validation
	if len(opt.R1) == 0 {
		return opt, errors.New("at least one --r1 file is required")
	}
	if len(opt.R2) != 0 && len(opt.R2) != len(opt.R1) {
		return opt, fmt.Errorf("--r1 and --r2 must list the same number of files (%d vs %d)", len(opt.R1), len(opt.R2))
	}
	switch opt.Mode {
	case ModeInline, ModeIndex:
	default:
		return opt, fmt.Errorf("unknown --mode %q (expected inline or index)", opt.Mode)
	}
	if len(opt.Barcodes) == 0 && !(opt.Mode == ModeIndex && opt.OutputDir != "") {
		return opt, errors.New("at least one --barcode is required (--mode index can detect barcodes when --output-dir is set)")
	}
	switch opt.OnError {
	case OnErrorAbort, OnErrorSkip:
	default:
		return opt, fmt.Errorf("unknown --on-error %q (expected abort or skip)", opt.OnError)
	}
	if opt.ErrorRate < 0 || opt.ErrorRate >= 1 {
		return opt, fmt.Errorf("--error-rate must be in [0,1), got %g", opt.ErrorRate)
	}
	return opt, nil
}
