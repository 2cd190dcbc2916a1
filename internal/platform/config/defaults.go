package config

const (
	defaultServerPort     = 8080
	defaultRateLimitRPS   = 20.0
	defaultRateLimitBurst = 40
	defaultBcryptCost     = 10
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":                   "0.0.0.0",
		"server.port":                   defaultServerPort,
		"server.read_timeout":           "5s",
		"server.write_timeout":          "10s",
		"server.idle_timeout":           "120s",
		"server.request_timeout":        "8s",
		"server.rate_limit.rps":         defaultRateLimitRPS,
		"server.rate_limit.burst":       defaultRateLimitBurst,
		"server.rate_limit.trust_proxy": false,

		"log.level":  "info",
		"log.format": "json",

		"auth.bcrypt_cost": defaultBcryptCost,

		"health.check_timeout": "2s",

		"seed.enabled": false,
		"seed.path":    "configs/seed.yaml",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "auditforce",
	}
}
