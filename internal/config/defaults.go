package config

const defaultServerPort = 8080

// defaults are loaded first and can be overridden by the config file and env
// vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":             "0.0.0.0",
		"server.port":             defaultServerPort,
		"server.read_timeout":     "5s",
		"server.write_timeout":    "10s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",

		"log.level":  "info",
		"log.format": "json",

		"phone.default_region": "ZZ",
		"phone.format":         "INTERNATIONAL",
		"phone.locale":         "en",
		"phone.widget":         "single_text",
		"phone.countries":      []string{},

		"metrics.enabled": true,
		"metrics.path":    "/metrics",
	}
}
