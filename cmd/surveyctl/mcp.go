package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"slintsurvey/internal/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve read-only survey reports over MCP (stdio)",
	Long: `Starts an MCP server on stdin/stdout exposing survey_dashboard,
survey_counts and survey_schema. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close(cmd.Context())

	return server.ServeStdio(mcptools.NewServer(a.ReportService, a.Schema))
}
