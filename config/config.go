package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the optional config file looked up in the config dir.
const FileName = "skyrunner"

// Settings is a typed snapshot of the loaded configuration.
type Settings struct {
	Screen     ScreenConfig     `mapstructure:"screen"`
	Level      LevelConfig      `mapstructure:"level"`
	Player     PlayerConfig     `mapstructure:"player"`
	Log        LogConfig        `mapstructure:"log"`
	Scoreboard ScoreboardConfig `mapstructure:"scoreboard"`
	Prefabs    PrefabsConfig    `mapstructure:"prefabs"`
}

type ScreenConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type LevelConfig struct {
	BlockSize           float64 `mapstructure:"blockSize"`
	SceneChangeDistance float64 `mapstructure:"sceneChangeDistance"`
	// Seed 0 seeds from the clock.
	Seed int64  `mapstructure:"seed"`
	Spec string `mapstructure:"spec"`
}

type PlayerConfig struct {
	Speed float64 `mapstructure:"speed"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type ScoreboardConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type PrefabsConfig struct {
	Watch bool `mapstructure:"watch"`
}

// SetDefaults registers every default value.
func SetDefaults() {
	viper.SetDefault("screen.width", 800)
	viper.SetDefault("screen.height", 450)

	viper.SetDefault("level.blockSize", 32)
	viper.SetDefault("level.sceneChangeDistance", 2400)
	viper.SetDefault("level.seed", 0)
	viper.SetDefault("level.spec", "scenes.yaml")

	viper.SetDefault("player.speed", 5)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)

	viper.SetDefault("scoreboard.enabled", true)
	viper.SetDefault("scoreboard.path", "skyrunner.db")

	viper.SetDefault("prefabs.watch", false)
}

// Load sets defaults, binds SKYRUNNER_* environment variables and reads
// skyrunner.yaml from configDir when present.
func Load(configDir string) error {
	SetDefaults()

	viper.SetEnvPrefix("SKYRUNNER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.SetConfigType("yaml")
	if configDir != "" {
		viper.AddConfigPath(configDir)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", configDir, err)
	}
	return nil
}

// Get decodes the current configuration into Settings.
func Get() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("config: decode: %w", err)
	}
	return s, nil
}
