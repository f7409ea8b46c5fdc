package mcptools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"slintsurvey/internal/model"
	"slintsurvey/internal/service"
)

// DashboardTool handles the survey_dashboard MCP tool.
type DashboardTool struct {
	reports *service.ReportService
}

// NewDashboardTool creates a DashboardTool.
func NewDashboardTool(reports *service.ReportService) *DashboardTool {
	return &DashboardTool{reports: reports}
}

// Definition returns the MCP tool definition for survey_dashboard.
func (t *DashboardTool) Definition() mcp.Tool {
	return mcp.NewTool("survey_dashboard",
		mcp.WithDescription(
			"Summarize all stored survey responses: totals, funding need, government "+
				"respondents, cluster distribution and the top answers for profile, "+
				"priorities and constraints.",
		),
	)
}

// Handle processes the survey_dashboard tool call.
func (t *DashboardTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := t.reports.Dashboard(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build dashboard: %v", err)), nil
	}
	return mcp.NewToolResultText(formatDashboard(summary)), nil
}

func formatDashboard(s *model.DashboardSummary) string {
	var b strings.Builder

	b.WriteString("# Survey Dashboard\n\n")
	fmt.Fprintf(&b, "- **Total responses:** %d\n", s.TotalResponses)
	fmt.Fprintf(&b, "- **Funding need:** %d\n", s.FundingNeedCount)
	fmt.Fprintf(&b, "- **Government respondents:** %d\n", s.GovernmentRespondents)
	fmt.Fprintf(&b, "- **Unique clusters:** %d\n", s.UniqueClusters)
	if !s.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "- **Generated:** %s\n", s.GeneratedAt.Format(time.RFC3339))
	}

	b.WriteString("\n## Clusters\n\n")
	if len(s.Clusters) == 0 {
		b.WriteString("_No responses yet._\n")
	} else {
		b.WriteString("| Cluster | Count |\n|---|---|\n")
		for _, c := range s.Clusters {
			fmt.Fprintf(&b, "| %s | %d |\n", c.Tag, c.Count)
		}
	}

	b.WriteString("\n## Profiles\n\n")
	writeCounts(&b, s.Profiles)
	b.WriteString("\n## Priorities\n\n")
	writeCounts(&b, s.Priorities)
	b.WriteString("\n## Constraints\n\n")
	writeCounts(&b, s.Constraints)

	return b.String()
}
