// Package mcptools exposes read-only survey reports as MCP tools.
//
// Each tool is a struct with its dependencies injected via constructor,
// a Definition() returning the mcp.Tool schema and a Handle() method.
package mcptools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"slintsurvey/internal/model"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// writeCounts renders a count table as markdown
func writeCounts(b *strings.Builder, counts []model.OptionCount) {
	if len(counts) == 0 {
		b.WriteString("_No answers yet._\n")
		return
	}
	b.WriteString("| Option | Count |\n|---|---|\n")
	for _, c := range counts {
		fmt.Fprintf(b, "| %s | %d |\n", escapeCell(c.Label), c.Count)
	}
}

var cellReplacer = strings.NewReplacer(
	"|", `\|`,
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// escapeCell keeps free-text answers inside a single table cell
func escapeCell(s string) string {
	return cellReplacer.Replace(s)
}
