package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var (
	ErrUnknownProvider     = errors.New("unknown provider")
	ErrInvalidTemperature  = errors.New("temperature must be in [0, 2]")
	ErrInvalidMaxTokens    = errors.New("max tokens must be positive")
	ErrUnsupportedLanguage = errors.New("unsupported relay language")
)

type HTTP struct {
	Addr string `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
}

type OpenAI struct {
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `yaml:"openai_model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	OpenAIBaseURL string `yaml:"openai_base_url" env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
}

type Gemini struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"gemini_model" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
}

type Relay struct {
	Provider    string  `yaml:"provider" env:"PROVIDER" env-default:"openai"`
	Temperature float32 `yaml:"temperature" env:"RELAY_TEMPERATURE" env-default:"0.7"`
	MaxTokens   int     `yaml:"max_tokens" env:"RELAY_MAX_TOKENS" env-default:"1000"`
	Language    string  `yaml:"language" env:"RELAY_LANGUAGE" env-default:"da"`
}

// Telegram front is disabled when the token is empty.
type Telegram struct {
	TelegramAPIToken string `env:"TELEGRAM_APITOKEN"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	File  string `yaml:"file" env:"LOG_FILE"`
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	OpenAI   OpenAI   `yaml:"openai"`
	Gemini   Gemini   `yaml:"gemini"`
	Relay    Relay    `yaml:"relay"`
	Telegram Telegram `yaml:"telegram"`
	Log      Log      `yaml:"log"`
}

// LoadConfig reads an optional YAML file and then the environment. A .env
// file in the working directory is loaded first when present.
func LoadConfig(cfgPath string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if cfgPath != "" {
		if err := cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgPath, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Relay.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Relay.Provider)
	}
	if c.Relay.Temperature < 0 || c.Relay.Temperature > 2 {
		return ErrInvalidTemperature
	}
	if c.Relay.MaxTokens <= 0 {
		return ErrInvalidMaxTokens
	}
	switch c.Relay.Language {
	case "da", "en":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, c.Relay.Language)
	}
	return nil
}
