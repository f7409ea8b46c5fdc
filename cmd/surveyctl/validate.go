package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slintsurvey/internal/survey"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog.yaml]",
	Short: "Validate a survey catalog",
	Long: `Loads a catalog file (or the embedded SLINT catalog when no file is given)
and reports every invariant violation: duplicate ids, option problems, limits,
and conditions that reference unknown, later or multi-choice questions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	var (
		schema *survey.Schema
		err    error
		source = "embedded catalog"
	)
	if len(args) == 1 {
		source = args[0]
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return readErr
		}
		schema, err = survey.Load(data)
	} else {
		schema, err = survey.Default()
	}

	out := cmd.OutOrStdout()
	if err != nil {
		fmt.Fprintf(out, "%s is invalid:\n", source)
		for _, e := range unwrapAll(err) {
			fmt.Fprintf(out, "  - %v\n", e)
		}
		return errors.New("catalog validation failed")
	}

	fmt.Fprintf(out, "%s is valid: %d sections, %d questions\n", source, len(schema.Sections()), len(schema.AllQuestions()))
	return nil
}

// unwrapAll flattens an errors.Join tree into its leaves
func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, unwrapAll(e)...)
		}
		return out
	}
	return []error{err}
}
