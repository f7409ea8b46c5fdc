package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"slintsurvey/internal/survey"
)

// SchemaTool handles the survey_schema MCP tool.
type SchemaTool struct {
	schema *survey.Schema
}

// NewSchemaTool creates a SchemaTool.
func NewSchemaTool(schema *survey.Schema) *SchemaTool {
	return &SchemaTool{schema: schema}
}

// Definition returns the MCP tool definition for survey_schema.
func (t *SchemaTool) Definition() mcp.Tool {
	return mcp.NewTool("survey_schema",
		mcp.WithDescription(
			"List the survey sections and questions with their ids, answer types, "+
				"selection limits and visibility conditions.",
		),
	)
}

// Handle processes the survey_schema tool call.
func (t *SchemaTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", t.schema.Title())

	for _, view := range t.schema.Views() {
		fmt.Fprintf(&b, "\n## %s. %s\n", view.ID, view.Title)
		if p := view.Conditional; p != nil {
			fmt.Fprintf(&b, "_Shown when %s includes any of: %s_\n", p.Field, strings.Join(p.AnyOf, ", "))
		}
		b.WriteString("\n")

		for _, q := range view.Questions {
			fmt.Fprintf(&b, "- **%s** (%s", q.ID, q.Kind)
			if q.Limit > 0 {
				fmt.Fprintf(&b, ", max %d", q.Limit)
			}
			b.WriteString(") ")
			b.WriteString(q.Text)
			if c := q.Condition; c != nil {
				if c.Values != nil {
					fmt.Fprintf(&b, " _[if %s in %s]_", c.Field, strings.Join(c.Values, " / "))
				} else {
					fmt.Fprintf(&b, " _[if %s = %s]_", c.Field, c.Value)
				}
			}
			b.WriteString("\n")
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}
