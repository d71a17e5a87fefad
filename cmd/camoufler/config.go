package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"camoufler/pkg/smudge"
)

const appName = "camoufler"

type smudgeConfig struct {
	Weight *uint8  `toml:"weight"`
	Shade  bool    `toml:"shade"`
	Min    *uint32 `toml:"min"`
	Max    *uint32 `toml:"max"`
	Seed   *uint64 `toml:"seed"`
}

// config is the optional camoufler config.toml. Every field is a default
// that command-line flags override.
type config struct {
	LogLevel string       `toml:"log_level"`
	Progress bool         `toml:"progress"`
	Smudge   smudgeConfig `toml:"smudge"`
}

// configPath returns $CAMOUFLER_CONFIG, or config.toml under the XDG config
// directory (~/.config/camoufler/ by default). It returns "" when no home
// directory is known, meaning no config file.
func configPath() string {
	if p := os.Getenv("CAMOUFLER_CONFIG"); p != "" {
		return p
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// safeLoadConfig loads the TOML config, allowing a missing file or an empty
// path.
func safeLoadConfig(path string) (config, error) {
	if path == "" {
		return config{}, nil
	}
	cfg, err := loadConfig(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config{}, nil
		}
		return config{}, fmt.Errorf("error loading config file: %w", err)
	}
	return cfg, nil
}

func loadConfig(path string) (config, error) {
	var cfg config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return config{}, fmt.Errorf("failed to decode config file: %w", err)
	}
	for _, v := range []*uint32{cfg.Smudge.Min, cfg.Smudge.Max} {
		if v != nil && *v > smudge.MaxPacked {
			return config{}, fmt.Errorf("smudge bound %#x exceeds 0xFFFFFF", *v)
		}
	}
	return cfg, nil
}

// params converts the smudge section into resolver defaults.
func (c config) params() smudge.Params {
	p := smudge.DefaultParams()
	if c.Smudge.Weight != nil {
		p.Weight = *c.Smudge.Weight
	}
	p.Shade = c.Smudge.Shade
	p.Seed = c.Smudge.Seed
	if c.Smudge.Min != nil || c.Smudge.Max != nil {
		lo, hi := uint32(0), smudge.MaxPacked
		if c.Smudge.Min != nil {
			lo = *c.Smudge.Min
		}
		if c.Smudge.Max != nil {
			hi = *c.Smudge.Max
		}
		p.Range = smudge.NewChannelRange(lo, hi)
	}
	return p
}

// level resolves the log level; CAMOUFLER_LOG_LEVEL wins over the config.
func (c config) level() log.Level {
	name := c.LogLevel
	if env := os.Getenv("CAMOUFLER_LOG_LEVEL"); env != "" {
		name = env
	}
	if name == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
