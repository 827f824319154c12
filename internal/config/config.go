package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

type Config struct {
	Server struct {
		Port           int           `yaml:"port"`
		ReadTimeout    time.Duration `yaml:"readTimeout"`
		WriteTimeout   time.Duration `yaml:"writeTimeout"`
		IdleTimeout    time.Duration `yaml:"idleTimeout"`
		AllowedOrigins []string      `yaml:"allowedOrigins"`
	} `yaml:"server"`

	LLM struct {
		Provider   string `yaml:"provider"`
		Model      string `yaml:"model"`
		BaseURL    string `yaml:"baseURL"`
		OllamaHost string `yaml:"ollamaHost"`
	} `yaml:"llm"`

	Analysis struct {
		MaxFoodLength int `yaml:"maxFoodLength"`
	} `yaml:"analysis"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	// secrets come from the environment only
	OpenAIAPIKey string `yaml:"-"`
	GeminiAPIKey string `yaml:"-"`
}

// Load reads .env (if present), the YAML file at path (if present) and then
// environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the settings used when neither file nor env say otherwise.
func Default() *Config {
	var c Config
	c.Server.Port = 8080
	c.Server.ReadTimeout = 15 * time.Second
	c.Server.WriteTimeout = 120 * time.Second
	c.Server.IdleTimeout = 60 * time.Second
	c.Server.AllowedOrigins = []string{"*"}
	c.LLM.Provider = ProviderOpenAI
	c.Analysis.MaxFoodLength = 500
	c.Logging.Level = "info"
	c.Logging.Format = "text"
	return &c
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = p
	}
	if v := getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := getenv("OPENAI_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := getenv("OLLAMA_HOST"); v != "" {
		c.LLM.OllamaHost = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	c.OpenAIAPIKey = strings.TrimSpace(getenv("OPENAI_API_KEY"))
	c.GeminiAPIKey = strings.TrimSpace(getenv("GEMINI_API_KEY"))
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	return nil
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("unknown llm provider %q (allowed: openai, gemini, ollama)", c.LLM.Provider)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// Credential returns the env variable name and value the provider needs.
// required is false for providers that run without a key.
func (c *Config) Credential() (name, value string, required bool) {
	switch c.LLM.Provider {
	case ProviderGemini:
		return "GEMINI_API_KEY", c.GeminiAPIKey, true
	case ProviderOllama:
		return "OLLAMA_HOST", c.LLM.OllamaHost, false
	default:
		return "OPENAI_API_KEY", c.OpenAIAPIKey, true
	}
}

func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Server.Port) }
