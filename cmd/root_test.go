package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"estimate", "prices", "runs", "serve"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "takeoff", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	for _, sub := range rootCmd.Commands() {
		if sub.Hidden || sub.Name() == "help" || sub.Name() == "completion" {
			continue
		}
		assert.Contains(t, rootCmd.Long, sub.Name(), "long help should describe %s", sub.Name())
	}
	assert.Contains(t, rootCmd.Long, "Postgres")
}

func TestEstimateCommand_Flags(t *testing.T) {
	for _, name := range []string{"json", "save", "locale"} {
		require.NotNil(t, estimateCmd.Flags().Lookup(name), "estimate should have --%s", name)
	}
	assert.Equal(t, "en", estimateCmd.Flags().Lookup("locale").DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestRunsCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range runsCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"list", "show", "lines"} {
		assert.True(t, names[name], "expected runs subcommand %q", name)
	}
	assert.Equal(t, "50", runsListCmd.Flags().Lookup("limit").DefValue)
}

func TestPricesCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range pricesCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["show"])
	assert.True(t, names["convert"])
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "12345678", truncateID("12345678-aaaa-bbbb"))
	assert.Equal(t, "short", truncateID("short"))
}
