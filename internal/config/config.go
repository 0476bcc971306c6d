// Package config loads the phoneform service configuration. Values are
// layered: built-in defaults, then an optional YAML file, then PHONE_
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-phoneform/pkg/form"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

// Config holds all configuration for the phone service and CLI.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Log     LogConfig     `koanf:"log"`
	Phone   PhoneConfig   `koanf:"phone"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// PhoneConfig holds the defaults applied to every phone field the service
// builds.
type PhoneConfig struct {
	DefaultRegion string   `koanf:"default_region"`
	Format        string   `koanf:"format"`
	Locale        string   `koanf:"locale"`
	Widget        string   `koanf:"widget"`
	Countries     []string `koanf:"countries"`
}

// FieldOptions converts the phone settings to form options.
func (p PhoneConfig) FieldOptions() ([]form.Option, error) {
	format, err := phonenumber.ParseFormat(p.Format)
	if err != nil {
		return nil, fmt.Errorf("config: phone.format: %w", err)
	}
	opts := []form.Option{
		form.WithDefaultRegion(p.Region()),
		form.WithFormat(format),
	}
	if p.Widget != "" {
		opts = append(opts, form.WithWidget(p.Widget))
	}
	if p.Locale != "" {
		opts = append(opts, form.WithLocale(p.Locale))
	}
	if len(p.Countries) > 0 {
		opts = append(opts, form.WithCountryOptions(form.ChildOptions{Choices: p.Countries}))
	}
	return opts, nil
}

// Region returns the upper-cased default region, or the unknown region.
func (p PhoneConfig) Region() string {
	region := strings.ToUpper(strings.TrimSpace(p.DefaultRegion))
	if region == "" {
		return phonenumber.UnknownRegion
	}
	return region
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}
