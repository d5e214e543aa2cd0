package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qraqula/graphmcp/internal/config"
	"github.com/qraqula/graphmcp/internal/graphql"
	"github.com/qraqula/graphmcp/internal/logging"
	"github.com/qraqula/graphmcp/internal/metrics"
	"github.com/qraqula/graphmcp/internal/search"
	"github.com/qraqula/graphmcp/internal/subgraph"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type globals struct {
	configFile string
	envFile    string
	color      bool
	out        io.Writer
	errOut     io.Writer
}

// runtime is everything a subcommand needs once configuration is resolved.
type runtime struct {
	cfg     config.Config
	log     *zap.Logger
	metrics *metrics.Metrics
	service *subgraph.Service
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	g := &globals{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "graphmcp",
		Short: "MCP server for subgraphs on The Graph Network",
		Long: `graphmcp exposes The Graph gateway to MCP clients as three tools:
searchSubgraphs, getSubgraphSchema and querySubgraph.

Run "graphmcp serve" from an MCP client configuration. The search, schema
and query subcommands run the same operations once from a terminal.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetVersionTemplate("{{ .Version }}\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&g.configFile, "config", "", "YAML config file")
	flags.StringVar(&g.envFile, "env-file", config.DefaultEnvFile, "dotenv file with THEGRAPH_* variables, ignored when missing")
	flags.String("gateway-url", config.DefaultGatewayURL, "base URL of The Graph gateway")
	flags.Duration("timeout", config.DefaultTimeout, "gateway request timeout")
	flags.Int("search-limit", search.DefaultLimit, "maximum number of search results")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", logging.FormatJSON, "log format: json or console")

	cmd.AddCommand(
		serveCommand(g),
		searchCommand(g),
		schemaCommand(g),
		queryCommand(g),
	)
	return cmd
}

func (g *globals) setup(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load(config.Options{
		File:    g.configFile,
		EnvFile: g.envFile,
		Flags:   cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	client := graphql.NewClient(cfg.GatewayURL, cfg.APIKey,
		graphql.WithTimeout(cfg.Timeout),
		graphql.WithHeader("User-Agent", cfg.UserAgent),
		graphql.WithLogger(log),
	)
	svc := subgraph.NewService(client, cfg.NetworkSubgraphID,
		subgraph.WithLogger(log),
		subgraph.WithMetrics(m),
		subgraph.WithSearchLimit(cfg.SearchLimit),
	)

	return &runtime{cfg: cfg, log: log, metrics: m, service: svc}, nil
}
