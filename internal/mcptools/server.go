package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"slintsurvey/internal/service"
	"slintsurvey/internal/survey"
)

// Version is reported to MCP clients
const Version = "1.0.0"

// NewServer creates an MCP server with every survey tool registered
func NewServer(reports *service.ReportService, schema *survey.Schema) *server.MCPServer {
	s := server.NewMCPServer(
		"slint-survey",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	dashboardTool := NewDashboardTool(reports)
	s.AddTool(dashboardTool.Definition(), dashboardTool.Handle)

	countsTool := NewCountsTool(reports)
	s.AddTool(countsTool.Definition(), countsTool.Handle)

	schemaTool := NewSchemaTool(schema)
	s.AddTool(schemaTool.Definition(), schemaTool.Handle)

	return s
}
