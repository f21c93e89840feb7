package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/blueprintgo/internal/compiler"
)

// PublishS3 selects the S3 artifact sink configured from the environment.
const PublishS3 = "s3"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath   string // snapshot JSON
	ModulesPath string // extra node-kind manifests
	OutPath     string // "" writes the script to stdout

	Namespace      string
	ScriptType     string
	EmitComments   bool
	AllowExecFanIn bool

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	ServePort       int
	WatchURL        string
	WatchNamespace  string
	Publish         string // "", "s3" or a directory
	CacheSize       int
}

// Mode names what Run does for a configuration.
type Mode string

// Run modes.
const (
	ModeCompile Mode = "compile"
	ModeServe   Mode = "serve"
	ModeWatch   Mode = "watch"
)

// NewConfig validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	modes := 0
	if cfg.GraphPath != "" {
		modes++
	}
	if cfg.ServePort > 0 {
		modes++
	}
	if cfg.WatchURL != "" {
		modes++
	}
	switch modes {
	case 0:
		return nil, errors.New("one of GraphPath, ServePort or WatchURL is required")
	case 1:
	default:
		return nil, errors.New("GraphPath, ServePort and WatchURL are mutually exclusive")
	}

	if cfg.OutPath != "" && cfg.GraphPath == "" {
		return nil, errors.New("OutPath is only valid when compiling a graph file")
	}
	if _, err := cfg.CompileOptions().Normalize(); err != nil {
		return nil, err
	}
	if cfg.CacheSize < 0 {
		return nil, fmt.Errorf("CacheSize must not be negative, got %d", cfg.CacheSize)
	}
	cfg.Publish = strings.TrimSpace(cfg.Publish)
	return &cfg, nil
}

// Mode reports the run mode selected by the configuration.
func (c *Config) Mode() Mode {
	switch {
	case c.ServePort > 0:
		return ModeServe
	case c.WatchURL != "":
		return ModeWatch
	}
	return ModeCompile
}

// CompileOptions returns the compiler options for a one-shot compile.
func (c *Config) CompileOptions() compiler.Options {
	return compiler.Options{
		TargetNamespace: c.Namespace,
		EmitComments:    c.EmitComments,
		ScriptType:      c.ScriptType,
		AllowExecFanIn:  c.AllowExecFanIn,
	}
}
