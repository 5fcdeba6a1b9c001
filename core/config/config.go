// Package config loads and validates the interpreter's YAML configuration.
package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const ConfigurationName = "config.yaml"

// Config holds the interpreter's settings. Zero values fall back to the
// defaults.
type Config struct {
	// Prompt is the prompt template; \w expands to the working directory
	// with the home prefix collapsed and \$ to the prompt marker.
	Prompt string `json:"prompt"`
	// ColorPrompt colors the rendered prompt when on a terminal.
	ColorPrompt bool `json:"color_prompt"`
	// Histfile overrides $HISTFILE as the history file path.
	Histfile string `json:"histfile"`
	// Histsize caps the in-memory history, 0 means unbounded.
	Histsize int `json:"histsize" validate:"gte=0"`
	// Path overrides $PATH for command resolution when set.
	Path string `json:"path"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Prompt:   `\$ `,
		Histsize: 500,
	}
}

// Validate the configuration for basic semantic errors.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}
