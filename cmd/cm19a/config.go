package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abates/x10/cm19a"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"
)

// Config holds the defaults for the command line flags. It is read from
// config.yaml in the user's configuration directory.
type Config struct {
	Transport    string        `yaml:"transport"`
	Port         string        `yaml:"port"`
	Baud         int           `yaml:"baud"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Debounce     time.Duration `yaml:"debounce"`
	Pace         time.Duration `yaml:"pace"`
	NoInit       bool          `yaml:"no_init"`
	Log          LogConfig     `yaml:"log"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// LoadConfig reads the config file at path on top of the defaults, so a
// value written in the file, zero included, always wins. A missing file is
// not an error, the defaults are returned instead
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Transport:    "usb",
		Port:         "/dev/ttyUSB0",
		Baud:         115200,
		ReadTimeout:  cm19a.DefaultReadTimeout,
		WriteTimeout: cm19a.DefaultWriteTimeout,
		Debounce:     cm19a.DefaultDebounceWindow,
		Pace:         100 * time.Millisecond,
		Log: LogConfig{
			Level:   "info",
			MaxSize: 10,
		},
	}
}

// Writer returns where log output should go: a rotating file when one is
// configured, otherwise stderr
func (lc LogConfig) Writer() io.Writer {
	if lc.File == "" {
		return os.Stderr
	}

	return &lumberjack.Logger{
		Filename:   lc.File,
		MaxSize:    lc.MaxSize,
		MaxBackups: lc.MaxBackups,
		MaxAge:     lc.MaxAge,
	}
}
