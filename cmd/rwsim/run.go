package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"gitlab.com/slon/rwsim/accessgate"
	"gitlab.com/slon/rwsim/simulation"
)

type runOptions struct {
	configPath  string
	readers     int
	writers     int
	duration    time.Duration
	stagger     time.Duration
	policy      string
	seed        uint64
	metricsAddr string
	watch       time.Duration
	verbose     bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rwsim",
		Short:         "Readers-writers contention simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation and print its report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := runSimulation(cmd, opts, log); err != nil {
				log.Error("simulation failed", zap.Error(err))
				return err
			}
			return nil
		},
	}

	def := simulation.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file")
	f.IntVar(&opts.readers, "readers", def.Readers, "number of readers")
	f.IntVar(&opts.writers, "writers", def.Writers, "number of writers")
	f.DurationVar(&opts.duration, "duration", def.Duration, "run window after all actors started, 0 runs until interrupted")
	f.DurationVar(&opts.stagger, "stagger", def.Stagger, "spread actor starts over this window")
	f.StringVar(&opts.policy, "policy", def.Policy.String(), "gate policy: writer-priority or naive")
	f.Uint64Var(&opts.seed, "seed", def.Seed, "random seed, 0 picks one")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve prometheus /metrics on this address while running")
	f.DurationVar(&opts.watch, "watch", 0, "log actor views at this interval")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log every actor phase")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		cfg.Level.SetLevel(zap.DebugLevel)
	}
	return cfg.Build()
}

// resolveConfig layers the config file and then explicitly set flags over
// the defaults.
func resolveConfig(flags *pflag.FlagSet, opts runOptions) (simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = simulation.LoadConfig(opts.configPath); err != nil {
			return simulation.Config{}, err
		}
	}

	if flags.Changed("readers") {
		cfg.Readers = opts.readers
	}
	if flags.Changed("writers") {
		cfg.Writers = opts.writers
	}
	if flags.Changed("duration") {
		cfg.Duration = opts.duration
	}
	if flags.Changed("stagger") {
		cfg.Stagger = opts.stagger
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if flags.Changed("policy") {
		policy, err := accessgate.ParsePolicy(opts.policy)
		if err != nil {
			return simulation.Config{}, fmt.Errorf("%w: %w", simulation.ErrInvalidConfig, err)
		}
		cfg.Policy = policy
	}
	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, opts runOptions, log *zap.Logger) error {
	cfg, err := resolveConfig(cmd.Flags(), opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	driverOpts := []simulation.Option{simulation.WithLogger(log)}

	if opts.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		driverOpts = append(driverOpts, simulation.WithRegisterer(reg))

		srv := &http.Server{
			Addr:              opts.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("serving metrics", zap.String("addr", opts.metricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	d := simulation.New(driverOpts...)

	if opts.watch > 0 {
		watchCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			watch(watchCtx, d, opts.watch, log)
		}()
		defer func() {
			cancel()
			<-done
		}()
	}

	if _, err := d.RunConfig(ctx, cfg); err != nil {
		return err
	}

	rep := d.Report()
	if _, err := rep.WriteTo(cmd.OutOrStdout()); err != nil {
		return err
	}
	if starved := rep.Starved(); len(starved) > 0 {
		log.Warn("actors never entered the critical section", zap.Strings("actors", starved))
	}
	return nil
}

func watch(ctx context.Context, d *simulation.Driver, every time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		live := d.Live()
		log.Info("progress",
			zap.Int64("reads", live.Reads),
			zap.Int64("writes", live.Writes),
			zap.Int("gate_readers", d.Gate().Readers),
			zap.Float64("speed", d.Tempo().Multiplier()),
		)
		for _, v := range d.Actors() {
			log.Info("actor",
				zap.String("actor", v.ID),
				zap.Stringer("status", v.Status),
				zap.Float64("x", v.Position.X),
				zap.Float64("z", v.Position.Z),
			)
		}
	}
}
