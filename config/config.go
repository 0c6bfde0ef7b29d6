// Package config loads typed configuration from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// DefaultEnvFile is read when present and no EnvFile is configured.
const DefaultEnvFile = ".env"

// Prefix is the environment prefix of Config.
const Prefix = "AGENTDESK"

// Config is the runtime configuration of the agentdesk CLI.
type Config struct {
	LogLevel           string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat          string `envconfig:"LOG_FORMAT" default:"console"`
	GraphFile          string `envconfig:"GRAPH_FILE"`
	SessionID          string `envconfig:"SESSION_ID"`
	ConfirmationNumber string `envconfig:"CONFIRMATION_NUMBER" default:"ABC123"`
	Seat               string `envconfig:"SEAT" default:"12A"`
	MetricsAddr        string `envconfig:"METRICS_ADDR"`
}

// Options configures New.
type Options struct {
	// EnvFile is a .env file that must exist. When empty, DefaultEnvFile is
	// read if it exists.
	EnvFile string
}

// MustNew is like New but panics on error.
func MustNew[T any](prefix string, optFns ...func(o *Options)) *T {
	conf, err := New[T](prefix, optFns...)
	if err != nil {
		panic(err)
	}

	return conf
}

// New exports the keys of the env file into the process environment, without
// overriding variables that are already set, and processes T with envconfig.
func New[T any](prefix string, optFns ...func(o *Options)) (*T, error) {
	opts := Options{}

	for _, fn := range optFns {
		fn(&opts)
	}

	if path := strings.TrimSpace(opts.EnvFile); path != "" {
		if err := exportEnvironment(path); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else if err := exportEnvironmentIfExists(DefaultEnvFile); err != nil {
		return nil, fmt.Errorf("failed to load default env file: %w", err)
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}

	return &conf, nil
}

func exportEnvironmentIfExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return err
	}

	if info.IsDir() {
		return nil
	}

	return exportEnvironment(path)
}

func exportEnvironment(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for k, val := range v.AllSettings() {
		key := strings.ToUpper(k)
		if _, set := os.LookupEnv(key); set {
			continue
		}

		if err := os.Setenv(key, fmt.Sprint(val)); err != nil {
			return err
		}
	}

	return nil
}
