package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentdesk"
	"github.com/hupe1980/agentdesk/agent"
	"github.com/hupe1980/agentdesk/airline"
	"github.com/hupe1980/agentdesk/config"
	"github.com/hupe1980/agentdesk/logging"
	"github.com/hupe1980/agentdesk/metrics"
	"github.com/hupe1980/agentdesk/runner"
)

// DefaultQueries are simulated when no query is given.
var DefaultQueries = []string{
	"What's the baggage policy?",
	"I want to change my seat",
	"Do you have Wi-Fi?",
}

type rootFlags struct {
	envFile            string
	logLevel           string
	logFormat          string
	graphFile          string
	sessionID          string
	confirmationNumber string
	seat               string
	metricsAddr        string
	serve              bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "agentdesk",
		Short:         "Airline customer-support agent desk",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", "", "path to .env file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format (console, text, json)")
	pf.StringVar(&flags.graphFile, "graph", "", "YAML agent graph spec")

	rootCmd.AddCommand(newSimulateCmd(flags), newGraphCmd(flags))

	return rootCmd
}

func newSimulateCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [query...]",
		Short: "Run queries through triage and the specialist agents",
		Long: `Run queries through the agent desk. Without arguments the three
example queries are simulated. Every query of a run shares one conversation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			return runSimulation(cmd, conf, flags.serve, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.sessionID, "session", "", "session id (generated when empty)")
	f.StringVar(&flags.confirmationNumber, "confirmation", "", "confirmation number passed to seat requests")
	f.StringVar(&flags.seat, "seat", "", "seat passed to seat requests")
	f.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	f.BoolVar(&flags.serve, "serve", false, "keep serving metrics after the simulation until interrupted")

	return cmd
}

func newGraphCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the agent handoff graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			spec, err := loadSpec(conf.GraphFile)
			if err != nil {
				return err
			}

			g, err := airline.NewGraph(spec)
			if err != nil {
				return err
			}

			renderGraph(cmd.OutOrStdout(), g)

			return nil
		},
	}
}

// loadConfig reads the environment and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	conf, err := config.New[config.Config](config.Prefix, func(o *config.Options) { o.EnvFile = flags.envFile })
	if err != nil {
		return nil, err
	}

	override := func(name string, dst *string, v string) {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*dst = v
		}
	}

	override("log-level", &conf.LogLevel, flags.logLevel)
	override("log-format", &conf.LogFormat, flags.logFormat)
	override("graph", &conf.GraphFile, flags.graphFile)
	override("session", &conf.SessionID, flags.sessionID)
	override("confirmation", &conf.ConfirmationNumber, flags.confirmationNumber)
	override("seat", &conf.Seat, flags.seat)
	override("metrics-addr", &conf.MetricsAddr, flags.metricsAddr)

	return conf, nil
}

func loadSpec(path string) (agent.GraphSpec, error) {
	if path == "" {
		return airline.DefaultGraphSpec(), nil
	}

	return agent.LoadGraphSpecFile(path)
}

func runSimulation(cmd *cobra.Command, conf *config.Config, serve bool, queries []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewLogger(&logging.Config{
		Level:     logging.ParseLevel(conf.LogLevel),
		Format:    conf.LogFormat,
		Output:    cmd.ErrOrStderr(),
		Component: "agentdesk",
	})

	spec, err := loadSpec(conf.GraphFile)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	collector := metrics.NewCollector("agentdesk", reg)

	if conf.MetricsAddr != "" {
		shutdown := serveMetrics(conf.MetricsAddr, reg, logger)
		defer shutdown()
	}

	desk, err := agentdesk.New(func(o *agentdesk.Options) {
		o.GraphSpec = &spec
		o.Logger = logger
		o.Observer = collector
		o.Hooks = collector
	})
	if err != nil {
		return err
	}

	if len(queries) == 0 {
		queries = DefaultQueries
	}

	reqs := make([]runner.Request, len(queries))
	for i, q := range queries {
		reqs[i] = runner.Request{Query: q, Args: []any{conf.ConfirmationNumber, conf.Seat}}
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Simulating agent interactions:")
	fmt.Fprintln(out)

	outcomes, err := desk.Simulate(ctx, conf.SessionID, reqs)
	if err != nil {
		return err
	}

	for _, o := range outcomes {
		renderOutcome(out, o)
	}

	fmt.Fprintln(out, "Simulation complete.")

	if serve && conf.MetricsAddr != "" {
		logger.Info("metrics.serving", "addr", conf.MetricsAddr)
		<-ctx.Done()
	}

	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger logging.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics.server.failed", "addr", addr, "error", err.Error())
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("metrics.server.shutdown_failed", "error", err.Error())
		}
	}
}
