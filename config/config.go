package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the notescan service.
type Config struct {
	General    GeneralConfig    `mapstructure:"general"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
	Coverage   CoverageConfig   `mapstructure:"coverage"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Cleanup    CleanupConfig    `mapstructure:"cleanup"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Listen         string        `mapstructure:"listen"`
	Debug          bool          `mapstructure:"debug"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// ProvidersConfig groups generation collaborator settings.
type ProvidersConfig struct {
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

// OpenAIConfig configures the OpenAI-backed provider.
type OpenAIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	CompletionModel string        `mapstructure:"completion_model"`
	EmbeddingModel  string        `mapstructure:"embedding_model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// CoverageConfig selects the coverage engine. Thresholds are named constants
// in the coverage package, not configuration.
type CoverageConfig struct {
	Engine string `mapstructure:"engine"` // "lexical" or "embedding"
}

func (c CoverageConfig) Validate() error {
	switch c.Engine {
	case "", "lexical", "embedding":
		return nil
	}
	return fmt.Errorf("coverage.engine must be \"lexical\" or \"embedding\", got %q", c.Engine)
}

// StorageConfig selects and configures the deck store backend.
type StorageConfig struct {
	DeckStore string         `mapstructure:"deck_store"` // "memory", "redis" or "postgres"
	Redis     RedisConfig    `mapstructure:"redis"`
	Postgres  PostgresConfig `mapstructure:"postgres"`
}

type RedisConfig struct {
	Host    string        `mapstructure:"host"`
	Port    string        `mapstructure:"port"`
	Pass    string        `mapstructure:"pass"`
	DB      int           `mapstructure:"db"`
	Timeout time.Duration `mapstructure:"timeout"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

func (s StorageConfig) Validate() error {
	switch s.DeckStore {
	case "", "memory":
		return nil
	case "redis":
		if s.Redis.Host == "" || s.Redis.Port == "" {
			return fmt.Errorf("storage.redis.host and storage.redis.port are required for the redis deck store")
		}
		return nil
	case "postgres":
		if s.Postgres.URL == "" {
			return fmt.Errorf("storage.postgres.url is required for the postgres deck store")
		}
		return nil
	}
	return fmt.Errorf("storage.deck_store must be \"memory\", \"redis\" or \"postgres\", got %q", s.DeckStore)
}

// ExtractionConfig configures the OCR/extraction collaborator boundary.
type ExtractionConfig struct {
	// OCRURL is the base URL of the remote OCR service used for images and
	// for PDF pages whose text layer comes back near-empty. When unset,
	// low-text pages are kept as-is (possibly empty).
	OCRURL string `mapstructure:"ocr_url"`
	// MinPageChars is the text-layer length under which a PDF page is sent
	// to the OCR service.
	MinPageChars int `mapstructure:"min_page_chars"`
	// Timeout bounds a single extraction call to the OCR service.
	Timeout time.Duration `mapstructure:"timeout"`
}

// CleanupConfig drives the janitor that prunes expired sessions and decks.
type CleanupConfig struct {
	Cron       string        `mapstructure:"cron"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// LoadConfig reads configuration from the given file, or from the usual
// locations when path is empty. Environment variables with the NOTESCAN_
// prefix override file values (e.g. NOTESCAN_PROVIDERS_OPENAI_API_KEY).
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("general.listen", ":8000")
	viper.SetDefault("general.debug", false)
	viper.SetDefault("general.default_timeout", 30*time.Second)
	viper.SetDefault("providers.openai.completion_model", "gpt-4o-mini")
	viper.SetDefault("providers.openai.embedding_model", "text-embedding-3-small")
	viper.SetDefault("providers.openai.temperature", 0.7)
	viper.SetDefault("providers.openai.max_tokens", 600)
	viper.SetDefault("providers.openai.timeout", 30*time.Second)
	viper.SetDefault("coverage.engine", "lexical")
	viper.SetDefault("storage.deck_store", "memory")
	viper.SetDefault("storage.redis.port", "6379")
	viper.SetDefault("storage.redis.ttl", 24*time.Hour)
	viper.SetDefault("extraction.min_page_chars", 50)
	viper.SetDefault("extraction.timeout", 60*time.Second)
	viper.SetDefault("cleanup.cron", "0 * * * *")
	viper.SetDefault("cleanup.session_ttl", 12*time.Hour)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("NOTESCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine: defaults plus env cover the common
		// single-binary deployment. Anything else is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.Coverage.Validate(); err != nil {
		panic(err)
	}
	if err := config.Storage.Validate(); err != nil {
		panic(err)
	}

	return &config
}
