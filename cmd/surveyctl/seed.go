package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"slintsurvey/internal/model"
	"slintsurvey/internal/survey"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample responses",
	Long: `Submits answer sets through the normal submission path, so projections and
cluster tags are computed exactly as for live respondents.

Without --file a small built-in demo set is used. A seed file is a YAML list of
answer maps; strings are single answers and lists are multi-choice answers:

  - A1: Ada Lovelace
    A2: ada@example.com
    B1: [Student]`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML file with answer sets")
}

func runSeed(cmd *cobra.Command, args []string) error {
	sets := demoAnswers()
	if seedFile != "" {
		data, err := os.ReadFile(seedFile)
		if err != nil {
			return err
		}
		if sets, err = parseSeed(data); err != nil {
			return fmt.Errorf("parse %s: %w", seedFile, err)
		}
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close(cmd.Context())

	for i, answers := range sets {
		resp, err := a.ResponseService.Submit(cmd.Context(), answers)
		if err != nil {
			return fmt.Errorf("answer set %d: %w", i+1, err)
		}
		logger.Debug("seeded response", zap.String("id", resp.ID), zap.String("name", resp.FullName))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d response(s)\n", len(sets))
	return nil
}

func parseSeed(data []byte) ([]model.AnswerSet, error) {
	var raw []map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	sets := make([]model.AnswerSet, 0, len(raw))
	for i, entry := range raw {
		store := survey.NewAnswerStore()
		for id, v := range entry {
			switch val := v.(type) {
			case string:
				store.SetAnswer(id, model.Text(val))
			case []interface{}:
				items := make([]string, 0, len(val))
				for _, item := range val {
					s, ok := item.(string)
					if !ok {
						return nil, fmt.Errorf("entry %d: %s: list items must be strings", i+1, id)
					}
					items = append(items, s)
				}
				store.SetAnswer(id, model.List(items...))
			default:
				return nil, fmt.Errorf("entry %d: %s: answer must be a string or a list of strings", i+1, id)
			}
		}
		sets = append(sets, store.Snapshot())
	}
	return sets, nil
}

func demoAnswers() []model.AnswerSet {
	return []model.AnswerSet{
		{
			"A1": model.Text("Aminata Kamara"),
			"A2": model.Text("aminata@example.com"),
			"A4": model.Text("Freetown, Sierra Leone"),
			"B1": model.List("Student"),
			"D1": model.List("AI & Emerging Technologies", "Cybersecurity"),
			"I1": model.Text("Computer Science"),
		},
		{
			"A1": model.Text("Mohamed Sesay"),
			"A2": model.Text("mohamed@example.com"),
			"A4": model.Text("Bo, Sierra Leone"),
			"B1": model.List("Startup Founder (Pre-revenue or Early Stage)"),
			"G1": model.Text("Yes"),
			"G2": model.Text("0-1 year (Startup stage)"),
			"G6": model.Text("Yes"),
			"G8": model.Text("$10,000 - $50,000"),
		},
		{
			"A1": model.Text("Fatmata Conteh"),
			"A2": model.Text("fatmata@example.com"),
			"A4": model.Text("London, United Kingdom"),
			"B1": model.List("Diaspora Professional", "Investor / Venture Capital / Angel Investor"),
			"G6": model.Text("Possibly within 12 months"),
		},
		{
			"A1": model.Text("Ibrahim Bangura"),
			"A2": model.Text("ibrahim@example.com"),
			"B1": model.List("Government / Public Sector Official"),
			"D1": model.List("ICT Policy & Government Collaboration"),
		},
	}
}
