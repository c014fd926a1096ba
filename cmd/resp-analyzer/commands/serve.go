package commands

import (
	"os/signal"
	"syscall"

	"resp-analyzer/internal/mcp"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as an MCP server over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return mcp.NewServer(cfg, Version).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
