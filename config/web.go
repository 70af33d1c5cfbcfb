package config

// WebConfig contains configuration for the browser UI server.
type WebConfig struct {
	// Addr is the address to bind the UI server to.
	Addr string `env:"WEB_ADDR" envDefault:":8081"`

	// APIBaseURL is where the UI server reaches the job board API.
	APIBaseURL string `env:"WEB_API_BASE_URL" envDefault:"http://localhost:8080"`
}

// Sanitize applies guardrails to web configuration values.
func (w *WebConfig) Sanitize() {
	if w.Addr == "" {
		w.Addr = ":8081"
	}
	if w.APIBaseURL == "" {
		w.APIBaseURL = "http://localhost:8080"
	}
}
