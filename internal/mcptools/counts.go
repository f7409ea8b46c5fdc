package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"slintsurvey/internal/service"
)

// CountsTool handles the survey_counts MCP tool.
type CountsTool struct {
	reports *service.ReportService
}

// NewCountsTool creates a CountsTool.
func NewCountsTool(reports *service.ReportService) *CountsTool {
	return &CountsTool{reports: reports}
}

// Definition returns the MCP tool definition for survey_counts.
func (t *CountsTool) Definition() mcp.Tool {
	return mcp.NewTool("survey_counts",
		mcp.WithDescription(
			"Count how often each answer was given to one question across all stored "+
				"responses. Multi-choice answers count once per selected option.",
		),
		mcp.WithString("question_id",
			mcp.Required(),
			mcp.Description("Question identifier, e.g. B1 or D1 (see survey_schema)"),
		),
		mcp.WithNumber("top",
			mcp.Description("Keep only the N most frequent answers (default: all)"),
		),
	)
}

// Handle processes the survey_counts tool call.
func (t *CountsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	questionID := strings.TrimSpace(req.GetString("question_id", ""))
	if questionID == "" {
		return mcp.NewToolResultError("'question_id' is required"), nil
	}
	top := intArg(req, "top", 0)
	if top < 0 {
		return mcp.NewToolResultError("'top' must not be negative"), nil
	}

	counts, err := t.reports.Counts(ctx, questionID, top)
	if errors.Is(err, service.ErrUnknownQuestion) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown question %q", questionID)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count answers: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", counts.QuestionID, counts.Prompt)
	fmt.Fprintf(&b, "Answered by %d response(s).\n\n", counts.Answered)
	writeCounts(&b, counts.Counts)
	return mcp.NewToolResultText(b.String()), nil
}
