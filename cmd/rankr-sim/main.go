package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/rankr/internal/simulate"
	"github.com/okian/rankr/pkg/logger"
)

// Default configuration constants.
const (
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rankr-sim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfg      simulate.Config
		logLevel string
	)
	fs.StringVar(&cfg.BaseURL, "url", simulate.DefaultBaseURL, "Base URL of the service")
	fs.IntVar(&cfg.Sessions, "sessions", simulate.DefaultSessions, "Number of tournaments to play")
	fs.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent players")
	fs.IntVar(&cfg.MinItems, "min-items", 0, "Smallest selection per tournament (default 2)")
	fs.IntVar(&cfg.MaxItems, "max-items", 0, "Largest selection per tournament (default 10)")
	fs.Float64Var(&cfg.UndoRate, "undo-rate", 0.1, "Probability of pressing back instead of voting")
	fs.Int64Var(&cfg.Seed, "seed", time.Now().UnixNano(), "Seed for selections and votes")
	fs.DurationVar(&cfg.Timeout, "timeout", simulate.DefaultTimeout, "HTTP request timeout")
	fs.BoolVar(&cfg.Export, "export", false, "Export every verified ranking on the server")
	fs.BoolVar(&cfg.Keep, "keep", false, "Leave sessions on the server")
	fs.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if err := logger.InitWithWriter(stdout); err != nil {
		fmt.Fprintln(stderr, "failed to setup logging:", err)
		return 1
	}
	if err := logger.SetLevelString(logLevel); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	if _, err := simulate.Run(ctx, cfg); err != nil {
		fmt.Fprintln(stderr, "simulation failed:", err)
		return 1
	}
	return 0
}
