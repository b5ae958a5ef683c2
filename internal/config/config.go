package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"portfolioquest/internal/state"
)

// Config is the resolved runtime configuration.
type Config struct {
	LogLevel       string           `mapstructure:"logLevel"`
	LogFile        string           `mapstructure:"logFile"`
	NavigationFile string           `mapstructure:"navigationFile"`
	ContentFile    string           `mapstructure:"contentFile"`
	StartViewpoint string           `mapstructure:"startViewpoint"`
	Transition     TransitionConfig `mapstructure:"transition"`
	Frame          FrameConfig      `mapstructure:"frame"`
	Telescope      TelescopeConfig  `mapstructure:"telescope"`
	Server         ServerConfig     `mapstructure:"server"`
}

// TransitionConfig holds camera animation settings.
type TransitionConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// FrameConfig holds the host frame cadence.
type FrameConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// TelescopeConfig holds the telescope tool order and the content id of its trigger.
type TelescopeConfig struct {
	Tools   []string `mapstructure:"tools"`
	Trigger string   `mapstructure:"trigger"`
}

// ServerConfig holds HTTP host settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("navigationFile", "")
	v.SetDefault("contentFile", "")
	v.SetDefault("startViewpoint", "")

	v.SetDefault("transition.duration", 1200*time.Millisecond)
	v.SetDefault("frame.interval", 16*time.Millisecond)

	v.SetDefault("telescope.tools", state.DefaultTools)
	v.SetDefault("telescope.trigger", "telescope")

	v.SetDefault("server.addr", ":8080")
}

// Load reads defaults, then the optional file at path, then QUEST_* environment
// overrides (QUEST_SERVER_ADDR overrides server.addr).
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("quest")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the navigation core cannot run with.
func (c Config) Validate() error {
	if c.Transition.Duration <= 0 {
		return errors.New("transition.duration must be positive")
	}
	if c.Frame.Interval <= 0 {
		return errors.New("frame.interval must be positive")
	}
	if len(c.Telescope.Tools) == 0 {
		return errors.New("telescope.tools must list at least one tool")
	}
	seen := make(map[string]bool, len(c.Telescope.Tools))
	for _, tool := range c.Telescope.Tools {
		if tool == "" {
			return errors.New("telescope.tools contains an empty id")
		}
		if seen[tool] {
			return fmt.Errorf("telescope.tools lists %q twice", tool)
		}
		seen[tool] = true
	}
	return nil
}
