package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fixheap/alloc"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "heapctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func Test_Load_Defaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *c)
	assert.Equal(t, alloc.DefaultCapacity, c.Capacity)
	assert.Equal(t, slog.LevelInfo, c.Level())
}

func Test_Load_MissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), *c)
}

func Test_Load_File(t *testing.T) {
	path := writeConfig(t, "capacity: 4096\nfreePolicy: ignore\nlogLevel: debug\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4096, c.Capacity)
	assert.Equal(t, "ignore", c.FreePolicy)
	assert.Equal(t, slog.LevelDebug, c.Level())

	opts := c.AllocOptions(nil)
	assert.Equal(t, alloc.FreeIgnore, opts.FreePolicy)
}

func Test_Load_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "logLevel: warn\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, alloc.DefaultCapacity, c.Capacity)
	assert.Equal(t, "strict", c.FreePolicy)
	assert.Equal(t, slog.LevelWarn, c.Level())
}

func Test_Load_EmptyFile(t *testing.T) {
	c, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), *c)
}

func Test_Load_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "capacity: 4096\n")
	t.Setenv("HEAPCTL_CAPACITY", "8192")
	t.Setenv("HEAPCTL_FREE_POLICY", "ignore")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8192, c.Capacity)
	assert.Equal(t, "ignore", c.FreePolicy)
}

func Test_Load_UnknownField(t *testing.T) {
	_, err := Load(writeConfig(t, "capcity: 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshaling config file")
}

func Test_Load_BadEnvValue(t *testing.T) {
	t.Setenv("HEAPCTL_CAPACITY", "lots")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing environment variables")
}

func Test_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"capacity too small", func(c *Config) { c.Capacity = alloc.HeaderSize }, "capacity"},
		{"capacity too large", func(c *Config) { c.Capacity = alloc.MaxCapacity + 1 }, "capacity"},
		{"bad policy", func(c *Config) { c.FreePolicy = "lenient" }, "free policy"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func Test_DefaultPath_Env(t *testing.T) {
	t.Setenv("HEAPCTL_CONFIG_FILE", "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", DefaultPath())
}
