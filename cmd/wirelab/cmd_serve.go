package main

import (
	"context"

	"github.com/spf13/cobra"

	"wirelab/internal/logging"
	mcpserver "wirelab/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the solvers and the
grader as tools. Editors and agents connect through their MCP
configuration and call the tools directly.

The server monitors for parent process death. When the client goes away
without closing the stream, the server self-terminates to prevent
zombie processes.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting wirelab MCP server over stdio (parent watchdog active)")
	return mcpserver.NewServer(version).Run(ctx)
}
