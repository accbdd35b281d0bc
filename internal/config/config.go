// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ostafen/ftype/internal/env"
	"github.com/ostafen/ftype/pkg/checksum"
	"github.com/ostafen/ftype/pkg/util/format"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "FTYPE"

// Keys double as flag names.
const (
	KeyLogLevel      = "log-level"
	KeyOutput        = "output"
	KeyHash          = "hash"
	KeyMmapThreshold = "mmap-threshold"
	KeyProgress      = "progress"
)

var Outputs = []string{"text", "json", "yaml", "dfxml"}

type Config struct {
	LogLevel      string `mapstructure:"log-level"`
	Output        string `mapstructure:"output"`
	Hash          string `mapstructure:"hash"`
	MmapThreshold string `mapstructure:"mmap-threshold"`
	Progress      bool   `mapstructure:"progress"`
}

func Defaults() Config {
	return Config{
		LogLevel:      "INFO",
		Output:        "text",
		Hash:          "none",
		MmapThreshold: "64MB",
	}
}

// Load resolves the configuration from, in increasing priority: defaults,
// the config file, FTYPE_* environment variables and flags that were set
// explicitly. With path empty, ftype.yaml is looked up in the user config
// directory and then in the working directory; not finding one is fine.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyHash, d.Hash)
	v.SetDefault(KeyMmapThreshold, d.MmapThreshold)
	v.SetDefault(KeyProgress, d.Progress)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(env.AppName)
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, env.AppName))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the values that have a closed set of choices.
func (c Config) Validate() error {
	if !validOutput(c.Output) {
		return fmt.Errorf("invalid output %q, expected one of %s", c.Output, strings.Join(Outputs, ", "))
	}
	if _, err := c.Checksum(); err != nil {
		return err
	}
	if _, err := c.MmapThresholdBytes(); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyMmapThreshold, err)
	}
	return nil
}

func validOutput(s string) bool {
	for _, o := range Outputs {
		if s == o {
			return true
		}
	}
	return false
}

func (c Config) Checksum() (checksum.Algorithm, error) {
	return checksum.Parse(c.Hash)
}

// MmapThresholdBytes returns the file size from which content is memory
// mapped. "0" and "off" disable mapping.
func (c Config) MmapThresholdBytes() (int64, error) {
	if strings.EqualFold(c.MmapThreshold, "off") {
		return 0, nil
	}
	return format.ParseBytes(c.MmapThreshold)
}
