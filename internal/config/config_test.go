package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(KeyLogLevel, "INFO", "")
	fs.StringP(KeyOutput, "o", "text", "")
	fs.String(KeyHash, "none", "")
	fs.String(KeyMmapThreshold, "64MB", "")
	fs.Bool(KeyProgress, false, "")
	return fs
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)

	n, err := cfg.MmapThresholdBytes()
	require.NoError(t, err)
	require.Equal(t, int64(64<<20), n)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ftype.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: yaml\nhash: xxhash\nlog-level: DEBUG\n"), 0644))

	t.Setenv("FTYPE_HASH", "blake3")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--log-level", "ERROR"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	require.Equal(t, "yaml", cfg.Output)
	require.Equal(t, "blake3", cfg.Hash)
	require.Equal(t, "ERROR", cfg.LogLevel)
	require.False(t, cfg.Progress)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Output = "csv"
	require.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Hash = "md5"
	require.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.MmapThreshold = "huge"
	require.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.MmapThreshold = "off"
	require.NoError(t, cfg.Validate())
	n, err := cfg.MmapThresholdBytes()
	require.NoError(t, err)
	require.Zero(t, n)
}
