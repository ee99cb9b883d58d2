package tracing

import "time"

const reconnectionPeriod = 30 * time.Second

// Config holds the configuration for the tracing system.
type Config struct {
	// Disable turns tracing off. No spans are collected or exported.
	Disable bool `yaml:"disable"`

	// SampleRate is the fraction of traces to sample, between 0.0 and 1.0.
	SampleRate float64 `yaml:"sample_rate" default:"1" validate:"gte=0,lte=1"`

	// ExporterHost is the hostname of the OTLP collector.
	ExporterHost string `yaml:"exporter_host" validate:"required_if=Disable false"`

	// ExporterPort is the gRPC port of the OTLP collector.
	ExporterPort int `yaml:"exporter_port" default:"4317"`

	// Tags are added as resource attributes to every span.
	Tags map[string]string `yaml:"tags"`
}
