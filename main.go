// main.go
//
// CLI entry point: parse flags, enumerate the affinity mask, build the
// latency matrix, then hand the result to the table/plot/JSON/SQLite
// outputs. All policy lives in the packages below; main only wires them.
//
// Exit status: 0 on success, 1 on any fatal condition (bad flag, affinity
// failure, interrupted run). There is no partial-success status.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cheggaaa/pb/v3"
	"github.com/docopt/docopt-go"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wangrongwei/core-scalability/constants"
	"github.com/wangrongwei/core-scalability/control"
	"github.com/wangrongwei/core-scalability/cpu"
	"github.com/wangrongwei/core-scalability/handshake"
	"github.com/wangrongwei/core-scalability/matrix"
	"github.com/wangrongwei/core-scalability/report"
	"github.com/wangrongwei/core-scalability/store"
)

const version = "icl 1.0.0"

const usage = `icl measures inter-core one-way data latency between all CPU pairs.

Usage:
  icl [options]

Options:
  -h --help                Show this screen.
  -s <n> --samples=<n>     Handshake rounds per core pair [default: 1000].
  -w --write               Measure write-contention (CAS) latency instead of read propagation.
  -H --preheat             Spin each core for 200ms before measuring it.
  -t --smt                 Interleave hardware threads with cores in the output.
  -p --plot                Emit a gnuplot script instead of a bare table (pipe to: gnuplot -p).
  -n <name> --name=<name>  Run name shown in the graph title.
  --db=<file>              Append the finished run to a SQLite database.
  --json=<file>            Write the run as JSON ('-' for stdout).
  --version                Show version.
`

// newLogger builds the stderr console logger. Measurement loops never log;
// everything routed through here is cold path.
func newLogger() logr.Logger {
	zc := zap.NewDevelopmentEncoderConfig()
	zc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zc.EncodeTime = zapcore.TimeEncoderOfLayout("02/01 15:04:05")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zc),
		zapcore.AddSync(os.Stderr),
		zap.NewAtomicLevelAt(zapcore.InfoLevel),
	)
	return zapr.NewLogger(zap.New(core))
}

// optString reads an optional string flag from the docopt map.
func optString(opts map[string]interface{}, key string) string {
	if v, ok := opts[key].(string); ok {
		return v
	}
	return ""
}

func main() {
	opts, err := docopt.Parse(usage, nil, true, version, false)
	if err != nil {
		// docopt already printed the usage message
		os.Exit(1)
	}

	logger := newLogger()

	samples := constants.DefaultSamples
	if s := optString(opts, "--samples"); s != "" {
		samples, err = strconv.Atoi(s)
		if err != nil || samples <= 0 {
			fmt.Fprintf(os.Stderr, "icl: --samples must be a positive integer, got %q\n", s)
			os.Exit(1)
		}
	}

	mode := handshake.ModeRead
	if opts["--write"].(bool) {
		mode = handshake.ModeWrite
	}
	preheat := opts["--preheat"].(bool)
	smt := opts["--smt"].(bool)
	plot := opts["--plot"].(bool)
	name := optString(opts, "--name")
	dbPath := optString(opts, "--db")
	jsonPath := optString(opts, "--json")

	cores, err := cpu.Available()
	if err != nil {
		logger.Error(err, "cannot enumerate usable CPUs")
		os.Exit(1)
	}
	if len(cores) < 2 {
		logger.Info("nothing to measure", "cores", len(cores))
		os.Exit(1)
	}

	cfg := matrix.Config{
		Cores:   cores,
		Samples: samples,
		Mode:    mode,
		Preheat: preheat,
	}
	logger.Info("starting run",
		"cores", len(cores), "pairs", cfg.Pairs(),
		"samples", samples, "mode", mode.String(), "preheat", preheat)

	control.Arm()

	// Progress rendering happens strictly between pairs; in plot mode the
	// bar is skipped entirely so stdout piped into gnuplot stays clean.
	var onPair func()
	var bar *pb.ProgressBar
	if !plot {
		bar = pb.New(cfg.Pairs())
		bar.SetWriter(os.Stderr)
		bar.Start()
		onPair = func() { bar.Increment() }
	}

	m, err := matrix.Build(cfg, logger, onPair)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		logger.Error(err, "measurement aborted")
		os.Exit(1)
	}

	order := matrix.DisplayOrder(len(cores), smt)
	if plot {
		fmt.Print(report.Plot(m, order, name, mode))
	} else {
		fmt.Print(report.Table(m, order))
	}

	if jsonPath != "" {
		data, err := report.JSON(m, name, mode, samples)
		if err != nil {
			logger.Error(err, "JSON export failed")
			os.Exit(1)
		}
		if jsonPath == "-" {
			fmt.Println(string(data))
		} else if err := os.WriteFile(jsonPath, append(data, '\n'), 0o644); err != nil {
			logger.Error(err, "JSON export failed", "path", jsonPath)
			os.Exit(1)
		}
	}

	if dbPath != "" {
		runID, fp, err := store.Save(dbPath, m, name, mode, samples)
		if err != nil {
			logger.Error(err, "database save failed", "path", dbPath)
			os.Exit(1)
		}
		logger.Info("run stored", "path", dbPath, "run", runID, "fingerprint", fp[:16])
	}
}
