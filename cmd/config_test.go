package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	configPath = ""
	_, opts, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 800.0, opts.Width)
	assert.Equal(t, "dark", opts.Theme)
	assert.True(t, opts.Metadata)
}

func TestLoadConfigOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toposcope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
theme: light
width: 1200
height: 900
linkDistance: 45
metadata: false
drift: true
layoutDb: layouts.db
`), 0o644))

	configPath = path
	t.Cleanup(func() { configPath = "" })

	cfg, opts, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "light", opts.Theme)
	assert.Equal(t, 1200.0, opts.Width)
	assert.Equal(t, 900.0, opts.Height)
	assert.Equal(t, 45.0, opts.LinkDistance)
	assert.False(t, opts.Metadata)
	assert.True(t, opts.Drift)
	assert.Equal(t, "layouts.db", cfg.LayoutDB)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, 0.9, opts.Theta)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed"), 0o644))

	configPath = path
	t.Cleanup(func() { configPath = "" })

	_, _, err := loadConfig()
	require.Error(t, err)
}
