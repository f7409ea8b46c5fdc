package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slintsurvey/internal/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		seedFile, exportOut, storeDriver = "", "", ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func useSQLite(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))
}

func TestValidateEmbedded(t *testing.T) {
	out, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "embedded catalog is valid: 18 sections")
}

func TestValidateReportsEveryProblem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
title: Broken
sections:
  - id: A
    title: One
    questions:
      - id: A1
        text: Pick
        type: radio
      - id: A1
        text: Again
        type: text
`), 0o644))

	out, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "bad.yaml is invalid:")
	assert.Contains(t, out, "A1")
}

func TestParseSeed(t *testing.T) {
	sets, err := parseSeed([]byte(`
- A1: Ada
  A2: ada@example.com
  B1: [Student, Diaspora Professional]
- A1: Bo
  A2: bo@example.com
`))
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.True(t, sets[0]["A1"].Equal(model.Text("Ada")))
	assert.True(t, sets[0]["B1"].Equal(model.List("Student", "Diaspora Professional")))

	_, err = parseSeed([]byte(`- A1: 42`))
	assert.Error(t, err)
	_, err = parseSeed([]byte(`- B1: [1, 2]`))
	assert.Error(t, err)
}

func TestSeedExportStats(t *testing.T) {
	useSQLite(t)

	out, err := execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 4 response(s)")

	out, err = execute(t, "export")
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewBufferString(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Ibrahim Bangura", rows[1][0])
	assert.Equal(t, "Government", rows[1][4])

	out, err = execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Store:                   sqlite (ok)")
	assert.Contains(t, out, "Responses:               4")
	assert.Contains(t, out, "Funding need:            2")
	assert.Contains(t, out, "Government respondents:  1")
}

func TestSeedRejectsIncompleteAnswers(t *testing.T) {
	useSQLite(t)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- A1: Ada\n"), 0o644))

	_, err := execute(t, "seed", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Full name and email are required.")
}
