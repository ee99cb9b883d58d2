// Package config defines the agrovida configuration file layout.
package config

import (
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/observability/logger"
	"github.com/rise-and-shine/agrovida/observability/tracing"
	"github.com/rise-and-shine/agrovida/rdb"
)

// Config is loaded from config/${ENVIRONMENT}.yaml by cfgloader.
type Config struct {
	Service    Service        `yaml:"service"`
	Logger     logger.Config  `yaml:"logger"`
	HTTPServer server.Config  `yaml:"http_server"`
	Database   rdb.Config     `yaml:"database"`
	Tracing    tracing.Config `yaml:"tracing"`
}

// Service identifies the running binary in logs, traces and response headers.
type Service struct {
	Name    string `yaml:"name"    default:"agrovida"`
	Version string `yaml:"version" default:"1.0.0"`
}
