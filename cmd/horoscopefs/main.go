package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	handlers "github.com/GriffinCanCode/horoscopefs/internal/api/http"
	"github.com/GriffinCanCode/horoscopefs/internal/config"
	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/dispatch"
	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/mount"
	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/registry"
	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/resolver"
	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/stat"
	"github.com/GriffinCanCode/horoscopefs/internal/infrastructure/monitoring"
	status "github.com/GriffinCanCode/horoscopefs/internal/infrastructure/server"
	"github.com/GriffinCanCode/horoscopefs/internal/logging"
	"github.com/GriffinCanCode/horoscopefs/internal/providers/http/client"
	"github.com/GriffinCanCode/horoscopefs/internal/providers/sites"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// invocation is the parsed command line
type invocation struct {
	mountpoint string
	identity   horoscope.Identity
}

// parseArgs applies command line flags on top of cfg and returns the
// positional arguments
func parseArgs(argv []string, cfg *config.Config) (invocation, error) {
	flagSet := pflag.NewFlagSet("horoscopefs", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level (debug, info, warn, error)")
	flagSet.BoolVar(&cfg.Log.Dev, "dev", cfg.Log.Dev, "human readable console logs")
	flagSet.BoolVar(&cfg.Mount.AllowOther, "allow-other", cfg.Mount.AllowOther, "let other users access the mount")
	flagSet.BoolVar(&cfg.Mount.Debug, "debug-fuse", cfg.Mount.Debug, "log every FUSE request")
	flagSet.BoolVar(&cfg.Mount.Prefetch, "prefetch", cfg.Mount.Prefetch, "fetch every source before mounting")
	flagSet.StringVar(&cfg.Metrics.Addr, "metrics-addr", cfg.Metrics.Addr, "serve metrics and status on this address")
	flagSet.DurationVar(&cfg.Fetch.Timeout, "timeout", cfg.Fetch.Timeout, "timeout of one page fetch")
	flagSet.Usage = func() { printHelp(flagSet) }

	if err := flagSet.Parse(argv); err != nil {
		return invocation{}, err
	}

	args := flagSet.Args()
	if len(args) != 3 {
		printHelp(flagSet)
		return invocation{}, fmt.Errorf("expected 3 arguments, got %d", len(args))
	}

	if err := cfg.Validate(); err != nil {
		return invocation{}, err
	}

	return invocation{
		mountpoint: args[0],
		identity:   horoscope.NewIdentity(args[1], args[2]),
	}, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `horoscopefs mounts a read-only filesystem of horoscopes.

Every horoscope website is a directory holding a daily, weekly and monthly
file. Content is fetched the first time a website's directory is touched.

Usage:
  horoscopefs [flags] <mountpoint> <sun sign> <moon sign>

Flags:
%s
Environment variables prefixed with %s_ configure everything else.
`, flagSet.FlagUsages(), config.Prefix)
}

func run(argv []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	inv, err := parseArgs(argv, cfg)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Dev,
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	session := handlers.Session{
		ID:         uuid.NewString(),
		Mountpoint: inv.mountpoint,
		SunSign:    inv.identity.SunSign,
		MoonSign:   inv.identity.MoonSign,
		Started:    time.Now(),
	}
	logger = logger.With(zap.String("session", session.ID))

	logger.Info("Initializing...",
		zap.String("mountpoint", inv.mountpoint),
		zap.String("sun_sign", inv.identity.SunSign),
		zap.String("moon_sign", inv.identity.MoonSign),
	)

	templates, err := stat.Sample("")
	if err != nil {
		return fmt.Errorf("sampling stat templates: %w", err)
	}

	metrics := monitoring.NewMetrics()

	fetcher := client.New(client.Options{
		Timeout:          cfg.Fetch.Timeout,
		Retries:          cfg.Fetch.Retries,
		RateLimit:        cfg.Fetch.RateLimit,
		UserAgent:        cfg.Fetch.UserAgent,
		BreakerThreshold: cfg.Breaker.Threshold,
		BreakerCooldown:  cfg.Breaker.Cooldown,
	})

	catalog := sites.Catalog(fetcher, sites.DefaultEndpoints(),
		sites.WithConcurrency(cfg.Fetch.Concurrency),
		sites.WithHook(fetchHook(logger.Named("sites"), metrics)),
	)

	reg, err := registry.New(catalog, inv.identity,
		registry.WithWarmHook(func(source horoscope.Source, elapsed time.Duration) {
			metrics.RecordWarm(source, elapsed)
			logger.Info("Source warmed", zap.Stringer("source", source), zap.Duration("elapsed", elapsed))
		}),
		registry.WithPanicHook(func(source horoscope.Source, err error) {
			metrics.RecordPanic(source)
			logger.Error("Content provider panicked", zap.Stringer("source", source), zap.Error(err))
		}),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Mount.Prefetch {
		logger.Info("Prefetching every source")
		reg.WarmAll(ctx)
	}

	dispatcher := dispatch.New(reg, templates,
		dispatch.WithOperationHook(func(op string, kind resolver.Kind) {
			metrics.RecordOperation(op, kind.String())
		}),
	)

	fsServer, err := mount.Mount(mount.Options{
		Mountpoint:     inv.mountpoint,
		Dispatcher:     dispatcher,
		AllowOther:     cfg.Mount.AllowOther,
		SingleThreaded: cfg.Mount.SingleThreaded,
		Debug:          cfg.Mount.Debug,
		AttrTimeout:    cfg.Mount.AttrTimeout,
		Logger:         logger.Named("mount"),
	})
	if err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		statusServer, err := status.New(status.Config{
			Addr:        cfg.Metrics.Addr,
			Development: cfg.Log.Dev,
			Session:     session,
			Registry:    reg,
			Breakers:    fetcher.BreakerStates,
			Metrics:     metrics,
			Logger:      logger.Named("status"),
		})
		if err != nil {
			_ = fsServer.Unmount()
			return err
		}
		go func() {
			if err := statusServer.Run(ctx); err != nil {
				logger.Error("Status server failed", zap.Error(err))
			}
		}()
	}

	logger.Info("Ready")

	go func() {
		<-ctx.Done()
		logger.Info("Unmounting...")
		if err := fsServer.Unmount(); err != nil {
			logger.Error("Unmount failed, run fusermount -u to release the mountpoint",
				zap.String("mountpoint", inv.mountpoint),
				zap.Error(err),
			)
		}
	}()

	// Returns once the filesystem is unmounted, by signal or externally
	fsServer.Wait()
	stop()

	snapshot := metrics.Snapshot()
	logger.Info("Unmounted",
		zap.Int64("sources_warmed", snapshot.Warmed),
		zap.Int64("fetches", snapshot.Fetches),
		zap.Int64("fetch_failures", snapshot.FetchFailures),
		zap.Int64("operations", snapshot.Operations),
	)
	return nil
}

// fetchHook logs and counts the outcome of every page fetch
func fetchHook(logger *logging.Logger, metrics *monitoring.Metrics) sites.Hook {
	return func(source horoscope.Source, t horoscope.ContentType, err error) {
		outcome := fetchOutcome(err)
		metrics.RecordFetch(source, t, outcome)

		if outcome == monitoring.OutcomeError {
			logger.Warn("Fetch failed, serving placeholder",
				zap.Stringer("source", source),
				zap.Stringer("type", t),
				zap.Error(err),
			)
			return
		}
		logger.Debug("Fetched",
			zap.Stringer("source", source),
			zap.Stringer("type", t),
			zap.String("outcome", outcome),
		)
	}
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return monitoring.OutcomeOK
	case errors.Is(err, sites.ErrUnavailable):
		return monitoring.OutcomeUnavailable
	default:
		return monitoring.OutcomeError
	}
}
