package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RejectsNothingToRun(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--http=false", "--shell=false"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flagHTTP, flagShell = true, true
	})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to run")
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "shell")

	f := rootCmd.PersistentFlags().Lookup("env-file")
	require.NotNil(t, f)
	assert.Equal(t, ".env", f.DefValue)
}

func TestRootCmd_InitErrorIsReturned(t *testing.T) {
	// a directory cannot be parsed as a dotenv file
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "env"), 0o755))

	rootCmd.SetArgs([]string{"shell", "--env-file", filepath.Join(dir, "env")})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flagEnvFile = ".env"
	})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init app failed")
}
