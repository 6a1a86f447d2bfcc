package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/ariadne/pkg/serve"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a streaming simulation server",
	Long: `Run Ariadne as a long-lived streaming server that accepts simulation
requests via stdin and writes results to stdout using NDJSON format.

This mode is designed for editors, graders and other tools that issue
many simulations without paying process startup per query. The process
emits a ready signal and serves requests until stdin closes or SIGTERM
is received.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	srv := serve.NewServer(cmd.InOrStdin(), cmd.OutOrStdout())
	return srv.Run(ctx)
}
