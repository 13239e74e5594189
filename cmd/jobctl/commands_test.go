package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/justsurfingit/jobs-tracker/internal/auth"
	"github.com/justsurfingit/jobs-tracker/internal/services"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUserDerivesOAuthIDs(t *testing.T) {
	userEmail, userProvider = "g@example.com", "google"
	t.Cleanup(func() { userEmail, userProvider = "", "email" })

	id, err := resolveUser(&cobra.Command{})
	require.NoError(t, err)
	assert.Equal(t, auth.DeriveUserID("google", "g@example.com"), id)
}

func TestResolveUserRequiresEmail(t *testing.T) {
	userEmail, userProvider = "  ", "google"
	t.Cleanup(func() { userEmail, userProvider = "", "email" })

	_, err := resolveUser(&cobra.Command{})
	assert.EqualError(t, err, "--email is required")
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{{"migrate"}, {"stats"}, {"export"}, {"agent"}, {"postings", "seed"}, {"postings", "list"}} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
	assert.NotNil(t, exportCmd.Flags().Lookup("format"))
	assert.Equal(t, "30d", statsCmd.Flags().Lookup("window").DefValue)
}

func TestWriteExport(t *testing.T) {
	summary := services.Aggregate(nil, services.WindowAll, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	out := filepath.Join(t.TempDir(), "export.csv")

	require.NoError(t, writeExport(out, services.FormatCSV, summary))
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "Summary"))

	err = writeExport(filepath.Join(t.TempDir(), "missing", "export.csv"), services.FormatCSV, summary)
	assert.ErrorContains(t, err, "failed to create")
}
