package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/lumenlabs/glow/backlight"
	"github.com/lumenlabs/glow/easing"
)

// GlowConfig represents options that configure the global behavior of the
// program. Every key has a working default, so a missing config file is never
// an error.
type GlowConfig struct {
	// Directory of the backlight device to drive.
	DeviceDir string

	// Default animation duration in seconds.
	Duration float64

	// Default easing curve name.
	Easing string
}

// NewGlowConfig builds the configuration from defaults, an optional
// $XDG_CONFIG_HOME/glow/glow.yaml file, and GLOW_* environment variables, in
// increasing order of precedence.
func NewGlowConfig() (GlowConfig, error) {
	v := viper.New()

	v.SetDefault("device_dir", backlight.DefaultDir)
	v.SetDefault("duration", 0.25)
	v.SetDefault("easing", easing.DefaultName)

	v.SetEnvPrefix("glow")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("glow")
	v.SetConfigType("yaml")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "glow"))
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing file just means defaults; anything else is a broken
		// config worth surfacing.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return GlowConfig{}, err
		}
	}

	return GlowConfig{
		DeviceDir: v.GetString("device_dir"),
		Duration:  v.GetFloat64("duration"),
		Easing:    v.GetString("easing"),
	}, nil
}
