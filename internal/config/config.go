package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	AI       AI       `mapstructure:"ai"`
	Search   Search   `mapstructure:"search"`
	Analysis Analysis `mapstructure:"analysis"`
	Server   Server   `mapstructure:"server"`
	Logging  Logging  `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug bool `mapstructure:"debug"`
}

// AI holds AI/LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxTokens   int32         `mapstructure:"max_tokens"`
	Temperature float32       `mapstructure:"temperature"`
}

// Search holds search provider configuration
type Search struct {
	DefaultProvider string          `mapstructure:"default_provider"`
	MaxResults      int             `mapstructure:"max_results"`
	Timeout         time.Duration   `mapstructure:"timeout"`
	Providers       SearchProviders `mapstructure:"providers"`
}

// SearchProviders holds configuration for all search providers
type SearchProviders struct {
	SerpAPI SerpAPIConfig       `mapstructure:"serpapi"`
	YouTube YouTubeSearchConfig `mapstructure:"youtube"`
	Scrape  ScrapeConfig        `mapstructure:"scrape"`
}

// SerpAPIConfig holds SerpAPI configuration
type SerpAPIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// YouTubeSearchConfig holds YouTube Data API configuration
type YouTubeSearchConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// ScrapeConfig holds configuration for the keyless scrape provider
type ScrapeConfig struct {
	UserAgent string `mapstructure:"user_agent"`
}

// Analysis holds pipeline tuning knobs
type Analysis struct {
	MaxCompetitors int `mapstructure:"max_competitors"`
}

// Server holds HTTP server configuration
type Server struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORS            CORSConfig    `mapstructure:"cors"`
}

// CORSConfig holds CORS configuration for the HTTP server
type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var globalConfig *Config

// Load loads the configuration from .env, the config file and environment
// variables, in that order of increasing precedence.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".tubelens")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration. Used by tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

func setDefaults() {
	viper.SetDefault("app.debug", false)

	viper.SetDefault("ai.gemini.api_key", "")
	viper.SetDefault("ai.gemini.model", "gemini-2.0-flash")
	viper.SetDefault("ai.gemini.timeout", "45s")
	viper.SetDefault("ai.gemini.max_tokens", 4096)
	viper.SetDefault("ai.gemini.temperature", 0.3)

	viper.SetDefault("search.default_provider", "serpapi")
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.timeout", "30s")
	viper.SetDefault("search.providers.scrape.user_agent",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")

	viper.SetDefault("analysis.max_competitors", 10)

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "90s")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("server.cors.enabled", false)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// bindEnvironmentVariables maps the well-known env vars onto config keys so
// users can configure credentials without a config file.
func bindEnvironmentVariables() {
	_ = viper.BindEnv("ai.gemini.api_key", "GEMINI_API_KEY")
	_ = viper.BindEnv("search.providers.serpapi.api_key", "SERPAPI_API_KEY")
	_ = viper.BindEnv("search.providers.youtube.api_key", "YOUTUBE_API_KEY")
	_ = viper.BindEnv("search.default_provider", "TUBELENS_SEARCH_PROVIDER")
	_ = viper.BindEnv("server.port", "PORT")
	_ = viper.BindEnv("logging.level", "TUBELENS_LOG_LEVEL")
}

func validateConfig(config *Config) error {
	if config.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive, got %d", config.Search.MaxResults)
	}
	if config.Analysis.MaxCompetitors <= 0 {
		return fmt.Errorf("analysis.max_competitors must be positive, got %d", config.Analysis.MaxCompetitors)
	}
	if config.AI.Gemini.Temperature < 0 || config.AI.Gemini.Temperature > 1 {
		return fmt.Errorf("ai.gemini.temperature must be in [0,1], got %f", config.AI.Gemini.Temperature)
	}
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port, got %d", config.Server.Port)
	}
	return nil
}
