package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	searchai "github.com/nitinanarwal/Search-AI"
	"github.com/nitinanarwal/Search-AI/internal/config"
	logpkg "github.com/nitinanarwal/Search-AI/internal/logger"
	"github.com/nitinanarwal/Search-AI/internal/version"
)

// app carries flag values and the dependencies built from them.
type app struct {
	env      string
	logLevel string
	baseURL  string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "searchai",
		Short: "Client for the nonprofit search API",
		Long: `searchai sends search intent (text, ZIP and radius, causes, sort, page)
to the search API and prints the normalized results.

Commands:
  searchai search   Run one search and print result cards
  searchai serve    Run the local JSON view over the search lifecycle
  searchai version  Print build information`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.env, "env", config.GetEnv(),
		"Environment, selects config/<env>.yaml: local, dev, docker, prod, test")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Log level override: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "",
		"Search API base URL (overrides config and "+config.BaseURLEnv+")")

	root.AddCommand(newSearchCmd(a), newServeCmd(a), newVersionCmd())
	return root
}

// setup loads config and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.env)
	if err != nil {
		return err
	}
	if a.baseURL != "" {
		cfg.Search.BaseURL = strings.TrimRight(a.baseURL, "/")
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --base-url: %w", err)
		}
	}

	level := cfg.Logging.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	logger, err := logpkg.NewLogger(a.env, level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// newClient builds an SDK client from the loaded config. reg may be nil.
func (a *app) newClient(reg prometheus.Registerer) (*searchai.Client, error) {
	ua := a.cfg.Search.UserAgent
	if ua == "" {
		ua = version.UserAgent()
	}
	opts := []searchai.Option{
		searchai.WithBaseURL(a.cfg.Search.BaseURL),
		searchai.WithTimeout(time.Duration(a.cfg.Search.TimeoutSec) * time.Second),
		searchai.WithUserAgent(ua),
		searchai.WithLogger(a.logger),
	}
	if reg != nil {
		opts = append(opts, searchai.WithPrometheus(reg))
	}
	client, err := searchai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// no config or logger needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
