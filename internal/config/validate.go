package config

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-phoneform/pkg/form"
	"github.com/goliatone/go-phoneform/pkg/phonenumber"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Phone.validate(),
		c.Metrics.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error
	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}
	switch l.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}
	return errors.Join(errs...)
}

func (p *PhoneConfig) validate() error {
	var errs []error
	if _, err := phonenumber.ParseFormat(p.Format); err != nil {
		errs = append(errs, fmt.Errorf("phone.format: %w", err))
	}
	region := p.Region()
	if region != phonenumber.UnknownRegion && phonenumber.Default().CountryCodeForRegion(region) == 0 {
		errs = append(errs, fmt.Errorf("phone.default_region %q is not a supported region", p.DefaultRegion))
	}
	switch p.Widget {
	case form.WidgetSingleText, form.WidgetCountryChoice:
	default:
		errs = append(errs, fmt.Errorf("phone.widget must be one of: %s, %s; got %q",
			form.WidgetSingleText, form.WidgetCountryChoice, p.Widget))
	}
	return errors.Join(errs...)
}

func (m *MetricsConfig) validate() error {
	if m.Enabled && (m.Path == "" || m.Path[0] != '/') {
		return fmt.Errorf("metrics.path must start with /, got %q", m.Path)
	}
	return nil
}
