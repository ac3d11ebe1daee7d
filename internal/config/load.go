package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/kingbayo/internal/platform/envutil"
)

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		d.Duration = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		return d.parse(u)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a JSON string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = time.Duration(n)
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a scalar, got yaml kind %d", node.Kind)
	}
	return d.parse(node.Value)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

func (d *Duration) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		d.Duration = 0
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = dd
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Env:      "development",
		LogLevel: "debug",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   1 << 20,
		},
		Engine: EngineConfig{
			BaseURL:             "https://generativelanguage.googleapis.com/v1beta/openai",
			ChatCompletionsPath: "/chat/completions",
			Model:               "gemini-2.0-flash",
			Timeout:             Duration{Duration: 45 * time.Second},
		},
		Generation: GenerationConfig{
			Timeout:     Duration{Duration: 60 * time.Second},
			Temperature: 0.7,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "kingbayo",
			Version:     "dev",
		},
	}
}

// Load builds the runtime configuration: defaults, then an optional config
// file (KB_CONFIG_PATH or ./config/config.{yaml,yml,json}), then environment
// overrides. A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("KB_CONFIG_PATH"))
	if cfgPath == "" {
		cfgPath = discoverConfigFile()
	}
	if cfgPath != "" {
		if err := decodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", cfgPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func discoverConfigFile() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.json"} {
		p := filepath.Join(wd, "config", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// decodeFile overlays the file onto cfg so omitted keys keep their defaults.
func decodeFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	case ".json":
		return json.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
}

func applyEnvOverrides(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.LogLevel = envutil.String("LOG_LEVEL", cfg.LogLevel)
	cfg.HTTP.Addr = envutil.String("KB_HTTP_ADDR", cfg.HTTP.Addr)

	cfg.Engine.Type = envutil.String("KB_ENGINE_TYPE", cfg.Engine.Type)
	cfg.Engine.BaseURL = envutil.String("KB_ENGINE_BASE_URL", cfg.Engine.BaseURL)
	cfg.Engine.Model = envutil.String("KB_ENGINE_MODEL", cfg.Engine.Model)
	cfg.Engine.Timeout.Duration = envutil.Duration("KB_ENGINE_TIMEOUT", cfg.Engine.Timeout.Duration)
	cfg.Engine.MaxRetries = envutil.Int("KB_ENGINE_MAX_RETRIES", cfg.Engine.MaxRetries)
	cfg.Engine.RetryBackoff.Duration = envutil.Duration("KB_ENGINE_RETRY_BACKOFF", cfg.Engine.RetryBackoff.Duration)

	// KB_API_KEY wins over the provider-specific name.
	cfg.Engine.APIKey = envutil.String("GEMINI_API_KEY", cfg.Engine.APIKey)
	cfg.Engine.APIKey = envutil.String("KB_API_KEY", cfg.Engine.APIKey)

	cfg.Generation.Timeout.Duration = envutil.Duration("KB_GENERATION_TIMEOUT", cfg.Generation.Timeout.Duration)
}

func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 1 << 20
	}
	if cfg.HTTP.ShutdownTimeout.Duration <= 0 {
		cfg.HTTP.ShutdownTimeout = Duration{Duration: 15 * time.Second}
	}

	e := &cfg.Engine
	e.APIKey = strings.TrimSpace(e.APIKey)
	e.Type = strings.ToLower(strings.TrimSpace(e.Type))
	e.BaseURL = strings.TrimRight(strings.TrimSpace(e.BaseURL), "/")
	e.ChatCompletionsPath = strings.TrimSpace(e.ChatCompletionsPath)
	e.Model = strings.TrimSpace(e.Model)

	switch e.Type {
	case "":
		if cfg.HasCredential() {
			e.Type = "oai_http"
		} else {
			e.Type = "none"
		}
	case "openai_http", "oai_http":
		e.Type = "oai_http"
	case "mock", "none":
	default:
		return fmt.Errorf("invalid engine.type=%q", e.Type)
	}

	if e.Type == "oai_http" {
		if e.BaseURL == "" {
			return errors.New("engine.base_url is required for oai_http")
		}
		if e.Model == "" {
			return errors.New("engine.model is required for oai_http")
		}
		if e.ChatCompletionsPath == "" {
			e.ChatCompletionsPath = "/v1/chat/completions"
		}
		if e.Timeout.Duration <= 0 {
			e.Timeout = Duration{Duration: 45 * time.Second}
		}
	}
	if e.MaxRetries < 0 {
		return errors.New("engine.max_retries must be >= 0")
	}
	if e.RetryBackoff.Duration < 0 {
		return errors.New("engine.retry_backoff must be >= 0")
	}

	if cfg.Generation.Timeout.Duration < 0 {
		return errors.New("generation.timeout must be >= 0")
	}
	if cfg.Generation.Temperature < 0 || cfg.Generation.Temperature > 2 {
		return fmt.Errorf("generation.temperature=%v out of range [0,2]", cfg.Generation.Temperature)
	}
	return nil
}
