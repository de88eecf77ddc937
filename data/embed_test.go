package data_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/blobarena/data"
	"github.com/decker502/blobarena/pkg/config"
)

func TestEmbeddedSandboxConfig(t *testing.T) {
	raw, err := fs.ReadFile(data.FS, "sandbox.yaml")
	require.NoError(t, err)

	cfg, err := config.ParseSandboxConfig(raw)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSandboxConfig().Arena.Platforms, cfg.Arena.Platforms)
}
