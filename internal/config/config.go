package config

import "time"

// PlaceholderAPIKey is the sample value shipped in example env files. It is
// treated the same as an unset key.
const PlaceholderAPIKey = "your_actual_gemini_api_key_here"

type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `json:"addr" yaml:"addr"`
	ReadHeaderTimeout Duration `json:"read_header_timeout" yaml:"read_header_timeout"`
	IdleTimeout       Duration `json:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout   Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `json:"max_request_bytes" yaml:"max_request_bytes"`
}

type EngineConfig struct {
	// Type selects the upstream engine:
	// - "": use "oai_http" when an API key is configured, otherwise no engine
	// - "oai_http": OpenAI-compatible chat completions endpoint
	// - "mock": offline engine replying with canned prose around a JSON payload
	// - "none": never call out; every generation uses the fallback generator
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	BaseURL             string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	ChatCompletionsPath string `json:"chat_completions_path,omitempty" yaml:"chat_completions_path,omitempty"`
	Model               string `json:"model,omitempty" yaml:"model,omitempty"`

	// APIKey is sent as `Authorization: Bearer <api_key>`. Usually injected
	// through GEMINI_API_KEY or KB_API_KEY rather than the config file.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// MaxRetries is the number of extra attempts after a 5xx, 429 or empty
	// completion. Total attempts = 1 + MaxRetries.
	MaxRetries int `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`

	// RetryBackoff is the delay before the first retry; it doubles per
	// attempt. A 429 Retry-After header overrides it. Zero means 500ms.
	RetryBackoff Duration `json:"retry_backoff,omitempty" yaml:"retry_backoff,omitempty"`
}

type GenerationConfig struct {
	// Timeout bounds one whole generation, upstream call included.
	Timeout     Duration `json:"timeout" yaml:"timeout"`
	Temperature float64  `json:"temperature" yaml:"temperature"`
}

type TelemetryConfig struct {
	ServiceName string `json:"service_name" yaml:"service_name"`
	Version     string `json:"version" yaml:"version"`
}

type Config struct {
	Env        string           `json:"env" yaml:"env"`
	LogLevel   string           `json:"log_level" yaml:"log_level"`
	HTTP       HTTPConfig       `json:"http" yaml:"http"`
	Engine     EngineConfig     `json:"engine" yaml:"engine"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	Telemetry  TelemetryConfig  `json:"telemetry" yaml:"telemetry"`
}

// HasCredential reports whether a usable upstream API key is configured.
func (c *Config) HasCredential() bool {
	return c != nil && c.Engine.APIKey != "" && c.Engine.APIKey != PlaceholderAPIKey
}
