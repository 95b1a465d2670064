package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/easelab/internal/log"
)

const (
	DefaultTheme          = "studio"
	DefaultFPS            = 60
	DefaultSettleDelayMs  = 50
	DefaultGuardPaddingMs = 500
	DefaultCategory       = "entering"
	DefaultDataDir        = "data"
	DefaultLogFile        = "easelab.log"

	// EnvPrefix prefixes environment overrides, e.g. EASELAB_THEME.
	EnvPrefix = "EASELAB"
)

type Config struct {
	Theme          string `yaml:"theme" mapstructure:"theme"`
	FPS            int    `yaml:"fps" mapstructure:"fps"`
	ShowCode       bool   `yaml:"show_code" mapstructure:"show_code"`
	Yoyo           bool   `yaml:"yoyo" mapstructure:"yoyo"`
	Editable       bool   `yaml:"editable" mapstructure:"editable"`
	Category       string `yaml:"category" mapstructure:"category"`
	Variant        string `yaml:"variant" mapstructure:"variant"`
	DataDir        string `yaml:"data_dir" mapstructure:"data_dir"`
	LogFile        string `yaml:"log_file" mapstructure:"log_file"`
	Debug          bool   `yaml:"debug" mapstructure:"debug"`
	SettleDelayMs  int    `yaml:"settle_delay_ms" mapstructure:"settle_delay_ms"`
	GuardPaddingMs int    `yaml:"guard_padding_ms" mapstructure:"guard_padding_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:          DefaultTheme,
		FPS:            DefaultFPS,
		ShowCode:       true,
		Category:       DefaultCategory,
		DataDir:        DefaultDataDir,
		LogFile:        DefaultLogFile,
		SettleDelayMs:  DefaultSettleDelayMs,
		GuardPaddingMs: DefaultGuardPaddingMs,
	}
}

// Load reads path over the defaults and applies EASELAB_* environment
// overrides. An empty path, or a path that does not exist, yields the
// defaults plus the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := DefaultConfig()
	defaults := map[string]any{
		"theme":            def.Theme,
		"fps":              def.FPS,
		"show_code":        def.ShowCode,
		"yoyo":             def.Yoyo,
		"editable":         def.Editable,
		"category":         def.Category,
		"variant":          def.Variant,
		"data_dir":         def.DataDir,
		"log_file":         def.LogFile,
		"debug":            def.Debug,
		"settle_delay_ms":  def.SettleDelayMs,
		"guard_padding_ms": def.GuardPaddingMs,
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
			log.Debug(log.CatConfig, "no config file, using defaults", "path", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info(log.CatConfig, "config loaded", "path", v.ConfigFileUsed(), "theme", cfg.Theme, "fps", cfg.FPS)
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("config: fps %d out of range 1..240", c.FPS)
	}
	if c.SettleDelayMs < 0 || c.GuardPaddingMs < 0 {
		return fmt.Errorf("config: negative delay")
	}
	return nil
}

// FrameInterval is the UI tick period.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

func (c *Config) GuardPadding() time.Duration {
	return time.Duration(c.GuardPaddingMs) * time.Millisecond
}
