// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// config holds the settings read from textblocks.yaml,
// TEXTBLOCKS_* environment variables, and command-line flags.
type config struct {
	Mode   string       `mapstructure:"mode"`
	Plain  plainConfig  `mapstructure:"plain"`
	Export exportConfig `mapstructure:"export"`
	Render renderConfig `mapstructure:"render"`
}

type plainConfig struct {
	// HonorMarkdown recognizes explicit Markdown before the heuristics.
	HonorMarkdown bool `mapstructure:"honor_markdown"`
}

type exportConfig struct {
	MaxHeadingLevel int    `mapstructure:"max_heading_level"`
	CodeFont        string `mapstructure:"code_font"`
}

type renderConfig struct {
	Width     int    `mapstructure:"width"`
	Theme     string `mapstructure:"theme"` // chroma style name
	Highlight bool   `mapstructure:"highlight"`
}

const (
	configName = "textblocks"
	envPrefix  = "TEXTBLOCKS"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "plain")
	v.SetDefault("plain.honor_markdown", true)
	v.SetDefault("export.max_heading_level", 3)
	v.SetDefault("export.code_font", "Courier New")
	v.SetDefault("render.width", 80)
	v.SetDefault("render.theme", "github")
	v.SetDefault("render.highlight", true)
}

// loadConfig reads configuration into v.
// If configFile is empty, textblocks.yaml is searched for
// in the working directory and the user configuration directory,
// and a missing file is not an error.
func loadConfig(v *viper.Viper, configFile string) (*config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := new(config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if cfg.Export.MaxHeadingLevel < 1 || cfg.Export.MaxHeadingLevel > 6 {
		return nil, fmt.Errorf("read config: export.max_heading_level must be between 1 and 6 (got %d)", cfg.Export.MaxHeadingLevel)
	}
	return cfg, nil
}
