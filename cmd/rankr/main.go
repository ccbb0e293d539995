// Command rankr ranks a handful of items by comparing them two at a time,
// either in the terminal or over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/rankr/internal/adapters/export"
	"github.com/okian/rankr/internal/adapters/http/api"
	"github.com/okian/rankr/internal/adapters/http/site"
	"github.com/okian/rankr/internal/adapters/http/swagger"
	"github.com/okian/rankr/internal/adapters/tui"
	app "github.com/okian/rankr/internal/app"
	"github.com/okian/rankr/internal/config"
	"github.com/okian/rankr/internal/domain/catalog"
	"github.com/okian/rankr/pkg/logger"
	"github.com/okian/rankr/pkg/metrics"
)

// Server and background loop timings.
const (
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	sweepInterval             = time.Minute
	nanosecondsPerMillisecond = 1e6
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `Usage: rankr [flags] [command]

Commands:
  tui      interactive terminal ranking (default)
  serve    HTTP API and browser client
  catalog  print the candidate list with positions

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds command-line overrides; nil means "keep the config value".
type options struct {
	configPath string
	addr       *string
	outputDir  *string
	seed       *int64
	logLevel   *string
	logFile    *string
	command    string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("rankr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var o options
	fs.StringVar(&o.configPath, "config", os.Getenv(config.EnvConfig), "YAML config file")
	addr := fs.String("addr", "", "HTTP listen address")
	out := fs.String("out", "", "directory for exported rankings")
	seed := fs.Int64("seed", 0, "fixed pair shuffle seed (0 = random)")
	level := fs.String("log-level", "", "debug, info, warn or error")
	logFile := fs.String("log-file", "", "log destination while the terminal UI runs")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			o.addr = addr
		case "out":
			o.outputDir = out
		case "seed":
			o.seed = seed
		case "log-level":
			o.logLevel = level
		case "log-file":
			o.logFile = logFile
		}
	})

	switch fs.NArg() {
	case 0:
		o.command = "tui"
	case 1:
		o.command = fs.Arg(0)
	default:
		fs.Usage()
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	return o, nil
}

func (o options) apply(cfg *config.Config) error {
	if o.addr != nil {
		cfg.Addr = *o.addr
	}
	if o.outputDir != nil {
		cfg.OutputDir = *o.outputDir
	}
	if o.seed != nil {
		cfg.Seed = *o.seed
	}
	if o.logLevel != nil {
		cfg.LogLevel = *o.logLevel
	}
	if o.logFile != nil {
		cfg.LogFile = *o.logFile
	}
	return config.Validate(cfg)
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env -> flags)
	cfg, err := config.LoadFrom(ctx, opts.configPath)
	if err == nil {
		err = opts.apply(cfg)
	}
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config:", err)
		return exitUsage
	}

	closeLog, err := initLogging(opts.command, cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "failed to initialize logging:", err)
		return exitError
	}
	defer closeLog()

	svc, err := newService(cfg)
	if err != nil {
		logger.Get().Error(ctx, "invalid catalog", logger.Error(err))
		fmt.Fprintln(stderr, "invalid catalog:", err)
		return exitError
	}

	switch opts.command {
	case "catalog":
		for i, name := range svc.Catalog() {
			fmt.Fprintf(stdout, "%3d  %s\n", i, name)
		}
		return exitOK
	case "tui":
		if err := tui.Run(ctx, svc); err != nil {
			logger.Get().Error(ctx, "terminal ui failed", logger.Error(err))
			fmt.Fprintln(stderr, err)
			return exitError
		}
		return exitOK
	case "serve":
		if err := serve(ctx, cfg, svc); err != nil {
			logger.Get().Error(ctx, "server failed", logger.Error(err))
			return exitError
		}
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", opts.command, usage)
		return exitUsage
	}
}

// initLogging points the global logger at a file while the terminal UI owns
// the screen and at stderr otherwise.
func initLogging(command string, cfg *config.Config, stderr io.Writer) (func(), error) {
	var w io.Writer = stderr
	closeFn := func() {}
	if command == "tui" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	if err := logger.InitWithWriter(w); err != nil {
		closeFn()
		return nil, err
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(context.Background(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return func() {
		_ = logger.Sync()
		closeFn()
	}, nil
}

func newService(cfg *config.Config) (*app.Service, error) {
	cat := catalog.Default()
	if len(cfg.Catalog) > 0 {
		var err error
		if cat, err = catalog.New(cfg.Catalog); err != nil {
			return nil, err
		}
	}

	exportOpts := []export.Option{
		export.WithDir(cfg.OutputDir),
		export.WithPrefix(cfg.ExportPrefix),
	}
	if pos, item, score, ok := cfg.Header(); ok {
		exportOpts = append(exportOpts, export.WithHeader(pos, item, score))
	}

	return app.New(
		app.WithLogger(logger.Named("service")),
		app.WithCatalog(cat),
		app.WithExporter(export.NewCSVExporter(exportOpts...)),
		app.WithSeed(cfg.Seed),
		app.WithSessionTTL(time.Duration(cfg.SessionTTLMinutes)*time.Minute),
		app.WithMaxSessions(cfg.MaxSessions),
		app.WithSweepInterval(sweepInterval),
	), nil
}

// newMux registers every HTTP route: API, docs, then the browser client.
func newMux(ctx context.Context, svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	site.Register(ctx, mux)
	return mux
}

func serve(ctx context.Context, cfg *config.Config, svc *app.Service) error {
	log := logger.Named("http")

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc),
		ReadTimeout:       time.Duration(cfg.ReadTimeoutMS) * time.Millisecond,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutMS) * time.Millisecond,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info(ctx, "server stopped")
	return nil
}

// startSystemMetricsUpdater samples runtime stats until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
