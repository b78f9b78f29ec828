package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("stylectl", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("log-level", "", "")
	flags.StringP("output", "o", "", "")
	flags.StringP("sheet", "s", "", "")
	flags.Bool("locking", false, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("", testFlags(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, OutputTable, cfg.Output)
	assert.Empty(t, cfg.Sheet)
	assert.False(t, cfg.Locking)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLoadConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stylectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\noutput: json\nsheet: Summary\n"), 0o600))

	tests := []struct {
		name      string
		env       map[string]string
		args      []string
		wantLevel string
		wantOut   string
		wantSheet string
		wantLock  bool
	}{
		{
			name:      "file over defaults",
			wantLevel: "info",
			wantOut:   OutputJSON,
			wantSheet: "Summary",
		},
		{
			name:      "env over file",
			env:       map[string]string{"STYLECTL_OUTPUT": "table", "STYLECTL_LOCKING": "true"},
			wantLevel: "info",
			wantOut:   OutputTable,
			wantSheet: "Summary",
			wantLock:  true,
		},
		{
			name:      "flags over env",
			env:       map[string]string{"STYLECTL_LOG_LEVEL": "error"},
			args:      []string{"--log-level=debug", "-s", "Data"},
			wantLevel: "debug",
			wantOut:   OutputJSON,
			wantSheet: "Data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			cfg, err := LoadConfig(path, testFlags(t, tt.args...))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, cfg.LogLevel)
			assert.Equal(t, tt.wantOut, cfg.Output)
			assert.Equal(t, tt.wantSheet, cfg.Sheet)
			assert.Equal(t, tt.wantLock, cfg.Locking)
			assert.Equal(t, path, cfg.File)
		})
	}
}

func TestLoadConfigValidation(t *testing.T) {
	_, err := LoadConfig("", testFlags(t, "-o", "xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")

	_, err = LoadConfig("", testFlags(t, "--log-level", "loud"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}
