package cmd

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/calbot-ai/calbot/internal/mcptools"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as an MCP server over stdio",
		Long: `Run calbot as an MCP (Model Context Protocol) server.

The server exposes the calendar operations as MCP tools over stdio, so AI
assistants can manage the same event store the chat session uses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logger := newLogger()

			store, closeStore := openStore(cfg, logger)
			defer closeStore()

			mcpSrv := mcpserver.NewMCPServer("calbot", version,
				mcpserver.WithToolCapabilities(true),
			)
			mcptools.RegisterCalendarTools(mcpSrv, store)

			logger.Info("starting MCP server on stdio")
			if err := mcpserver.ServeStdio(mcpSrv); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		},
	}
}
