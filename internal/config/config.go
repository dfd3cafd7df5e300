// Package config resolves application settings. Precedence, lowest to
// highest: built-in defaults, a .wirelab.yaml file (current directory first,
// then $HOME), and WIRELAB_* environment variables. A missing config file is
// not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"wirelab/internal/store"
	"wirelab/internal/sweep"
)

// Settings is the resolved application configuration.
type Settings struct {
	Store StoreSettings `mapstructure:"store"`
	Log   LogSettings   `mapstructure:"log"`
	Table TableSettings `mapstructure:"table"`
	Sweep sweep.Config  `mapstructure:"sweep"`
}

// StoreSettings configures attempt persistence.
type StoreSettings struct {
	Path string `mapstructure:"path"`
}

// LogSettings configures the slog handler.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TableSettings configures table rendering: "ascii" or "markdown".
type TableSettings struct {
	Mode string `mapstructure:"mode"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.path", store.DefaultDBPath)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("table.mode", "ascii")
	// Audio-band sweep out of the box.
	v.SetDefault("sweep.from", 10.0)
	v.SetDefault("sweep.to", 20000.0)
	v.SetDefault("sweep.points", sweep.DefaultPoints)
	v.SetDefault("sweep.log", true)
}

// Load resolves settings for the current process: cwd and $HOME are searched
// for .wirelab.yaml.
func Load() (*Settings, error) {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return load(dirs)
}

// LoadDir resolves settings reading the config file only from dir. Tests use
// it to stay clear of the caller's real config.
func LoadDir(dir string) (*Settings, error) {
	return load([]string{dir})
}

func load(dirs []string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".wirelab")
	v.SetConfigType("yaml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}

	v.SetEnvPrefix("WIRELAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &s, nil
}
