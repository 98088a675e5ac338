package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionString(t *testing.T) {
	s := versionString()
	assert.Contains(t, s, "firmdiag")
	assert.Contains(t, s, version)
	assert.Contains(t, s, commit)
	assert.Contains(t, s, date)
}

func TestVersionStringDefaults(t *testing.T) {
	s := versionString()
	assert.Contains(t, s, "dev")
	assert.Contains(t, s, "none")
	assert.Contains(t, s, "unknown")
}

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, versionString()+"\n", out.String())
}

func TestRootCmdDefaultFlags(t *testing.T) {
	cmd := newRootCmd()

	cfg, _ := cmd.PersistentFlags().GetString("config")
	assert.Equal(t, "firmdiag.toml", cfg)

	report, _ := cmd.PersistentFlags().GetString("report")
	assert.Equal(t, "text", report)

	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRootCmdHasBatchCommands(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"flowcharts", "advanced", "wiring", "static", "preview", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}
