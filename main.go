package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"morris/agent"
	"morris/communication"
	"morris/experiments"
	"morris/experiments/metrics"
	"morris/meta"
	"morris/player"
	"morris/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath    string
	timeBudget    time.Duration
	maxDepth      int
	logLevel      string
	metricsAddr   string
	advisor       bool
	baselineDepth int
	experiment    string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "morris",
		Short:         "Lasker Morris bot speaking the referee line protocol on stdin/stdout",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return runPlayer(cmd.Context(), config)
		},
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "YAML config file")
	root.PersistentFlags().DurationVar(&f.timeBudget, "time-budget", 0, "time allowed per move")
	root.PersistentFlags().IntVar(&f.maxDepth, "max-depth", 0, "maximum search depth")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "debug, info, warn, error or disabled")
	root.PersistentFlags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	root.Flags().BoolVar(&f.advisor, "advisor", false, "ask a language model for moves, searching when it fails")

	selfPlay := &cobra.Command{
		Use:   "selfplay",
		Short: "Play the configured search against a shallow baseline and store the records",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			experiment, err := selectExperiment(f.experiment, config.Search, f.baselineDepth)
			if err != nil {
				return err
			}
			return runSelfPlay(cmd.Context(), config, experiment)
		},
	}
	selfPlay.Flags().IntVar(&f.baselineDepth, "baseline-depth", 2, "search depth of the baseline agent")
	selfPlay.Flags().StringVar(&f.experiment, "experiment", "versus", "versus, depth or throughput")
	root.AddCommand(selfPlay)

	return root
}

// loadConfig layers command-line flags over the file and environment settings.
func loadConfig(cmd *cobra.Command, f *flags) (meta.Config, error) {
	config, err := meta.LoadConfig(f.configPath)
	if err != nil {
		// Logging is not configured yet
		fmt.Fprintln(os.Stderr, err)
		return config, err
	}
	if cmd.Flags().Changed("time-budget") {
		config.Search.TimeBudget = f.timeBudget
	}
	if cmd.Flags().Changed("max-depth") {
		config.Search.MaxDepth = f.maxDepth
	}
	if cmd.Flags().Changed("log-level") {
		config.Log.Level = f.logLevel
	}
	if cmd.Flags().Changed("metrics-addr") {
		config.Metrics.Addr = f.metricsAddr
	}
	if cmd.Flags().Changed("advisor") {
		config.Advisor.Enabled = f.advisor
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config, err
	}

	setupLogging(config.Log)
	return config, nil
}

// setupLogging sends logs to stderr; stdout carries the protocol.
func setupLogging(config meta.LogConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if config.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.StampMilli})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

func runPlayer(ctx context.Context, config meta.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := metrics.NewRegistry()
	stopMetrics := serveMetrics(config.Metrics.Addr, registry)
	defer stopMetrics()

	var a agent.Agent = agent.NewSearchAgent(newSearcher(config.Search))
	name := "search"
	if config.Advisor.Enabled {
		advisor := agent.NewAdvisorAgent(
			agent.NewOpenAIClient(config.Advisor.APIKey, config.Advisor.BaseURL),
			config.Advisor.Model,
			a,
			config.Advisor.Retries,
		)
		advisor.Timeout = config.Advisor.Timeout
		a, name = advisor, "advisor"
	}

	p := player.NewPlayer(a, communication.NewStdio(os.Stdin, os.Stdout),
		player.WithRegistry(registry),
		player.WithName(name),
	)
	if err := p.Play(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("session failed")
		return err
	}
	return nil
}

func selectExperiment(name string, config meta.SearchConfig, baselineDepth int) (experiments.Experiment, error) {
	switch name {
	case "versus":
		candidate := metrics.AgentConfig{ID: 1, Duration: config.TimeBudget, MaxDepth: config.MaxDepth}
		baseline := metrics.AgentConfig{ID: 0, Duration: config.TimeBudget, MaxDepth: baselineDepth}
		return experiments.VersusExperiment(candidate, baseline), nil
	case "depth":
		var depths []int
		for depth := 2; depth <= config.MaxDepth; depth *= 2 {
			depths = append(depths, depth)
		}
		return experiments.DepthExperiment(config.TimeBudget, depths), nil
	case "throughput":
		var budgets []time.Duration
		for budget := max(config.TimeBudget/8, time.Millisecond); budget <= config.TimeBudget; budget *= 2 {
			budgets = append(budgets, budget)
		}
		return experiments.ThroughputExperiment(config.MaxDepth, budgets), nil
	}
	err := fmt.Errorf("unknown experiment %q", name)
	fmt.Fprintln(os.Stderr, err)
	return experiments.Experiment{}, err
}

func runSelfPlay(ctx context.Context, config meta.Config, experiment experiments.Experiment) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := metrics.NewRegistry()
	stopMetrics := serveMetrics(config.Metrics.Addr, registry)
	defer stopMetrics()

	result, err := experiments.Run(ctx, config.SelfPlay, experiment, experiments.SearchAgents(config.Search.Weights), registry)
	if err != nil {
		log.Error().Err(err).Msg("self-play failed")
		return err
	}

	wins := result.Wins()
	for _, agentConfig := range experiment.Configs {
		log.Info().
			Int("wins", wins[agentConfig.ID]).
			Float64("nodes_per_second", result.NodesPerSecond(agentConfig.ID)).
			Msgf("%s: depth %d, budget %v", agentConfig.Name(), agentConfig.MaxDepth, agentConfig.Duration)
	}
	return nil
}

func newSearcher(config meta.SearchConfig) *searcher.Searcher {
	return searcher.NewSearcher(
		searcher.WithDuration(config.TimeBudget),
		searcher.WithMaxDepth(config.MaxDepth),
		searcher.WithEvaluationFn(config.Weights.Evaluator()),
		searcher.WithMetrics(),
	)
}

// serveMetrics exposes registry on addr in the background when addr is set.
func serveMetrics(addr string, registry *metrics.Registry) func() {
	if addr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", registry.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info().Msgf("serving metrics on %s/metrics", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Msg("metrics server stopped")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}
}
