package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// AllowedOrigin is the single browser origin allowed to call the API
	// cross-origin (e.g. "http://localhost:3000"). Empty disables CORS.
	AllowedOrigin string `env:"HTTP_ALLOWED_ORIGIN" envDefault:""`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Addr == "" {
		h.Addr = ":8080"
	}
}
