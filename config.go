package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the defaults that can be set from the environment.
// Command line flags take precedence.
type Config struct {
	Output string `env:"YUMREPLAY_OUTPUT" envDefault:"rpmResult"`
	Debug  bool   `env:"YUMREPLAY_DEBUG"`
}

// loadConfig parses the configuration from environ.
// A nil environ means the process environment.
func loadConfig(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %v", err)
	}
	return cfg, nil
}
