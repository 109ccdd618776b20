package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hersh/startris/internal/game"
	"github.com/kirsle/configdir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	appName    = "startris"
	envPrefix  = "STARTRIS"
	configName = "settings"
	configType = "json"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Game   GameConfig   `mapstructure:"game"`
	Server ServerConfig `mapstructure:"server"`
	Client ClientConfig `mapstructure:"client"`
	Debug  bool         `mapstructure:"debug"`
	LogDir string       `mapstructure:"log_dir"`
}

type GameConfig struct {
	StartingInterval time.Duration `mapstructure:"starting_interval"`
	SpeedIncrement   time.Duration `mapstructure:"speed_increment"`
	MinInterval      time.Duration `mapstructure:"min_interval"`
	LinesPerLevel    int           `mapstructure:"lines_per_level"`
	Seed             int64         `mapstructure:"seed"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type ClientConfig struct {
	ServerURL  string `mapstructure:"server_url"`
	PlayerName string `mapstructure:"player_name"`
}

// Dir is where settings.json is looked up when no path is given.
func Dir() string {
	return configdir.LocalConfig(appName)
}

func setDefaults(v *viper.Viper) {
	d := game.DefaultSettings()
	v.SetDefault("game.starting_interval", d.StartingInterval)
	v.SetDefault("game.speed_increment", d.SpeedIncrement)
	v.SetDefault("game.min_interval", d.MinInterval)
	v.SetDefault("game.lines_per_level", d.LinesPerLevel)
	v.SetDefault("game.seed", 0)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("client.server_url", "ws://localhost:8080/ws")
	v.SetDefault("client.player_name", "")
	v.SetDefault("debug", false)
	v.SetDefault("log_dir", "logs")
}

// Load reads the configuration. An empty path looks for settings.json in Dir
// and falls back to defaults when there is none; an explicit path must exist.
// STARTRIS_* environment variables override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType(configType)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the difficulty curve.
func (c *Config) Validate() error {
	g := c.Game
	switch {
	case g.StartingInterval <= 0:
		return fmt.Errorf("%w: game.starting_interval must be positive, got %s", ErrInvalid, g.StartingInterval)
	case g.MinInterval <= 0:
		return fmt.Errorf("%w: game.min_interval must be positive, got %s", ErrInvalid, g.MinInterval)
	case g.MinInterval > g.StartingInterval:
		return fmt.Errorf("%w: game.min_interval %s exceeds game.starting_interval %s", ErrInvalid, g.MinInterval, g.StartingInterval)
	case g.SpeedIncrement < 0:
		return fmt.Errorf("%w: game.speed_increment must not be negative, got %s", ErrInvalid, g.SpeedIncrement)
	case g.LinesPerLevel <= 0:
		return fmt.Errorf("%w: game.lines_per_level must be positive, got %d", ErrInvalid, g.LinesPerLevel)
	}
	return nil
}

// Settings converts the game section for the engine.
func (c *Config) Settings() game.Settings {
	return game.Settings{
		StartingInterval: c.Game.StartingInterval,
		SpeedIncrement:   c.Game.SpeedIncrement,
		MinInterval:      c.Game.MinInterval,
		LinesPerLevel:    c.Game.LinesPerLevel,
	}
}
