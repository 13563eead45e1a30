package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandFlags(t *testing.T) {
	for _, name := range []string{"config", "rules", "reference-year", "lang"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
}

func TestRootCommand_MissingRules(t *testing.T) {
	t.Setenv("SGKCALC_CONFIG", "")
	t.Setenv("SGKCALC_RULES", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--rules", filepath.Join(t.TempDir(), "missing.json")})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule table not found")
}
