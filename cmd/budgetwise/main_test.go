package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATA_SOURCE", "embedded")
	t.Setenv("LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "budgetwise dev\n", out)
}

func TestReportCommand(t *testing.T) {
	out, err := run(t, "report", "--page", "expenses", "--search", "bill")
	require.NoError(t, err)
	assert.Contains(t, out, "2 transactions found")
	assert.Contains(t, out, "Total: $176.55")

	out, err = run(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Financial Overview")
}

func TestReportCommandUnknownPage(t *testing.T) {
	_, err := run(t, "report", "--page", "settings")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown page")
}

func TestInvalidConfigIsReported(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := run(t, "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}
