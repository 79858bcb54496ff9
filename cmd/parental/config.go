package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = "parental"
	envPrefix  = "parental"

	outputText = "text"
	outputYAML = "yaml"
)

var errInvalidOutput = errors.New("invalid output format")

type config struct {
	Pad      bool   `mapstructure:"pad"`
	Copy     bool   `mapstructure:"copy"`
	Output   string `mapstructure:"output"`
	LogLevel string `mapstructure:"log-level"`
}

//nolint:gochecknoglobals
var defaults = map[string]any{
	"pad":       true,
	"copy":      false,
	"output":    outputText,
	"log-level": "info",
}

// loadConfig layers defaults, an optional parental.yaml, PARENTAL_*
// environment variables and finally any flags set on cmd.
func loadConfig(cmd *cobra.Command, file string) (config, error) {
	var c config

	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")

		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}

		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("unable to read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, fmt.Errorf("unable to bind flags: %w", err)
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to parse config: %w", err)
	}

	switch c.Output {
	case outputText, outputYAML:
	default:
		return c, fmt.Errorf("%w: %q", errInvalidOutput, c.Output)
	}

	return c, nil
}
