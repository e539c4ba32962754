package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/glow/backlight"
	"github.com/lumenlabs/glow/easing"
)

func TestNewGlowConfigDefaults(t *testing.T) {
	// Point XDG at an empty directory so a developer's real config file can't
	// leak into the test.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := NewGlowConfig()
	require.NoError(t, err)

	assert.Equal(t, backlight.DefaultDir, cfg.DeviceDir)
	assert.Equal(t, 0.25, cfg.Duration)
	assert.Equal(t, easing.DefaultName, cfg.Easing)
}

func TestNewGlowConfigEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GLOW_DEVICE_DIR", "/sys/class/backlight/amdgpu_bl0")
	t.Setenv("GLOW_DURATION", "1.5")
	t.Setenv("GLOW_EASING", "easeInOutQuad")

	cfg, err := NewGlowConfig()
	require.NoError(t, err)

	assert.Equal(t, "/sys/class/backlight/amdgpu_bl0", cfg.DeviceDir)
	assert.Equal(t, 1.5, cfg.Duration)
	assert.Equal(t, "easeInOutQuad", cfg.Easing)
}
