package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/cursorkeep/internal/cli"
	httpAdapter "github.com/aretw0/cursorkeep/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the diagnostics HTTP server",
	Long:  `Serves the session table, a prune trigger and Prometheus metrics over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		pruneEvery, _ := cmd.Flags().GetDuration("prune-interval")

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())

		keeper, _, logger, err := cli.Setup(globalOptions(cmd), reg)
		if err != nil {
			return err
		}
		defer keeper.Close()

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		var pruned <-chan struct{}
		if pruneEvery > 0 {
			pruned = keeper.StartPruning(sigCtx, pruneEvery)
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           httpAdapter.NewHandler(keeper, reg, logger),
			ReadHeaderTimeout: 5 * time.Second,
		}
		err = cli.Serve(sigCtx, cmd.OutOrStdout(), srv, logger)

		sigCtx.Cancel()
		if pruned != nil {
			<-pruned
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Address to listen on")
	serveCmd.Flags().Duration("prune-interval", time.Hour, "How often to prune while serving (0 disables)")
}
