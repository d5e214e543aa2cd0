package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/qraqula/graphmcp/internal/tools"
)

func serveCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools over stdio",
		Long: `Serve speaks MCP on stdin and stdout until stdin closes or the process is
interrupted. Logs go to stderr. With --metrics-addr, Prometheus metrics are
served over HTTP at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer rt.log.Sync() //nolint:errcheck
			return rt.serve(cmd.Context())
		},
	}
	cmd.Flags().String("metrics-addr", "", "listen address for /metrics, empty disables it")
	return cmd
}

func (rt *runtime) serve(ctx context.Context) error {
	mcpServer := tools.NewServer(rt.service, version)
	stdio := server.NewStdioServer(mcpServer)
	stdio.SetErrorLogger(zap.NewStdLog(rt.log.Named("mcp")))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	grp, ctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		defer cancel()
		rt.log.Info("serving MCP on stdio",
			zap.String("version", version),
			zap.String("gateway", rt.cfg.GatewayURL),
		)
		err := stdio.Listen(ctx, os.Stdin, os.Stdout)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if rt.cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", rt.metrics.Handler())
		srv := &http.Server{
			Addr:              rt.cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		grp.Go(func() error {
			rt.log.Info("serving metrics", zap.String("addr", rt.cfg.MetricsAddr))
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		grp.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err := grp.Wait()
	rt.log.Info("stopped", zap.Error(err))
	return err
}
