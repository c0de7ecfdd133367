// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the YAML configuration shared by the revmatch
// commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/someonegg/reviewmatch"
	"github.com/someonegg/reviewmatch/internal/logging"
)

const (
	DefaultTimeout      = 30 * time.Second
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 60 * time.Second
	DefaultNamespace    = "reviewmatch"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type EngineConfig struct {
	// Timeout bounds each solver run. Zero disables the bound.
	Timeout time.Duration `yaml:"timeout"`

	// NeutralAffinity scores pairs absent from the request's score table.
	NeutralAffinity float64 `yaml:"neutralAffinity"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
}

func Default() Config {
	return Config{
		Engine: EngineConfig{
			Timeout:         DefaultTimeout,
			NeutralAffinity: reviewmatch.NeutralAffinity,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg, keeping fields the document omits, and
// validates the result. Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	invalid := func(key string, format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, key, fmt.Sprintf(format, args...))
	}

	if c.Engine.Timeout < 0 {
		return invalid("engine.timeout", "must not be negative")
	}
	if a := c.Engine.NeutralAffinity; math.IsNaN(a) || math.Abs(a) > reviewmatch.MaxAffinity {
		return invalid("engine.neutralAffinity", "must be within ±%g", reviewmatch.MaxAffinity)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", "%v", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log.format", "unknown format %q", c.Log.Format)
	}
	if c.Server.Addr == "" {
		return invalid("server.addr", "must not be empty")
	}
	if c.Server.ReadTimeout < 0 {
		return invalid("server.readTimeout", "must not be negative")
	}
	if c.Server.WriteTimeout < 0 {
		return invalid("server.writeTimeout", "must not be negative")
	}
	if c.Metrics.Namespace == "" {
		return invalid("metrics.namespace", "must not be empty")
	}
	return nil
}
