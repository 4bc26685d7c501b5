// Package config holds settings of grammatic console utility.
//
// Settings are read from optional YAML file, then overridden by GRAMMATIC_*
// environment variables, then by command line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Describe holds description generator settings.
type Describe struct {
	Wrap            int    `yaml:"wrap"`
	Align           bool   `yaml:"align"`
	Indent          int    `yaml:"indent"`
	ExpandTerminals bool   `yaml:"expand_terminals"`
	Special         string `yaml:"special"`
}

// Config holds utility settings.
type Config struct {
	// Verbose is log verbosity: 0 for errors only, up to 4 for debug messages.
	Verbose int `yaml:"verbose"`
	// Log is log file path, empty for stderr.
	Log string `yaml:"log"`
	// Start is the name of start production.
	Start string `yaml:"start"`
	// Whitespace is whitespace pattern of syntactic productions.
	Whitespace string `yaml:"whitespace"`
	// MatchType is parser match type name.
	MatchType string `yaml:"matchtype"`
	// Tabs is tab stop width used for column counting.
	Tabs     int      `yaml:"tabs"`
	Describe Describe `yaml:"describe"`
}

// EnvVar describes an environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// EnvVars lists recognized environment variables.
var EnvVars = []EnvVar{
	{"GRAMMATIC_VERBOSE", "Log verbosity, 0 to 4 (default 0)"},
	{"GRAMMATIC_LOG", "Log file path (default stderr)"},
	{"GRAMMATIC_START", "Start production name (default is the first one)"},
	{"GRAMMATIC_MATCHTYPE", "Match type: first, last, longest, shortest, or all (default first)"},
	{"GRAMMATIC_TABS", "Tab stop width for column counting (default 1)"},
}

// Default returns default settings.
func Default() *Config {
	return &Config{
		MatchType: "first",
		Tabs:      1,
		Describe: Describe{
			Wrap:    80,
			Align:   true,
			Indent:  -1,
			Special: "desc",
		},
	}
}

// Load returns default settings overridden by YAML file (if path is not empty) and environment.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		if e := c.ReadFile(path); e != nil {
			return nil, e
		}
	}
	if e := c.ApplyEnv(os.Getenv); e != nil {
		return nil, e
	}
	return c, nil
}

// ReadFile reads YAML settings file, unknown keys are errors.
func (c *Config) ReadFile(path string) error {
	f, e := os.Open(path)
	if e != nil {
		return fmt.Errorf("open config: %w", e)
	}

	defer f.Close()
	return c.Read(f, path)
}

// Read reads YAML settings from r, name is used in error messages.
func (c *Config) Read(r io.Reader, name string) error {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	e := d.Decode(c)
	if e != nil && !errors.Is(e, io.EOF) {
		return fmt.Errorf("parse config %s: %w", name, e)
	}
	return nil
}

// ApplyEnv overrides settings with non-empty environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	clean := func(key string) string {
		return strings.Trim(getenv(key), "\"' ")
	}

	if v := clean("GRAMMATIC_VERBOSE"); v != "" {
		n, e := strconv.Atoi(v)
		if e != nil {
			return fmt.Errorf("GRAMMATIC_VERBOSE: %w", e)
		}
		c.Verbose = n
	}
	if v := clean("GRAMMATIC_LOG"); v != "" {
		c.Log = v
	}
	if v := clean("GRAMMATIC_START"); v != "" {
		c.Start = v
	}
	if v := clean("GRAMMATIC_MATCHTYPE"); v != "" {
		c.MatchType = v
	}
	if v := clean("GRAMMATIC_TABS"); v != "" {
		n, e := strconv.Atoi(v)
		if e != nil {
			return fmt.Errorf("GRAMMATIC_TABS: %w", e)
		}
		c.Tabs = n
	}
	return nil
}
