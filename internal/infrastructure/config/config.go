package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	App      AppConfig    `mapstructure:"app"`
	Server   ServerConfig `mapstructure:"server"`
	Vision   VisionConfig `mapstructure:"vision"`
	Parser   ParserConfig `mapstructure:"parser"`
	Cache    CacheConfig  `mapstructure:"cache"`
	Image    ImageConfig  `mapstructure:"image"`
	LogLevel string       `mapstructure:"log_level"`
}

// AppConfig carries application metadata.
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig carries HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// VisionConfig configures the vision-language extraction collaborator.
type VisionConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ParserConfig carries text-parsing defaults.
type ParserConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
	MaxTextLength   int    `mapstructure:"max_text_length"`
}

// CacheConfig configures the capture-result cache. When RedisAddr is set the
// cache is backed by Redis, otherwise by process memory.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
}

// ImageConfig carries image intake limits.
type ImageConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
}

// LoadConfig loads configuration from .env and the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine in production; env vars still apply.
		_ = err
	}

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("vision.api_key", "VISION_API_KEY")
	viper.BindEnv("vision.model", "VISION_MODEL")
	viper.BindEnv("vision.base_url", "VISION_BASE_URL")
	viper.BindEnv("vision.enabled", "VISION_ENABLED")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	viper.BindEnv("cache.redis_password", "CACHE_REDIS_PASSWORD")
	viper.BindEnv("parser.default_language", "PARSER_DEFAULT_LANGUAGE")
	viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey hides everything but the first and last four characters.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-parser")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("vision.enabled", false)
	viper.SetDefault("vision.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("vision.model", "qwen/qwen2.5-vl-72b-instruct:free")
	viper.SetDefault("vision.max_tokens", 2000)
	viper.SetDefault("vision.timeout", "60s")

	viper.SetDefault("parser.default_language", "de")
	viper.SetDefault("parser.max_text_length", 50000)

	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")
	viper.SetDefault("cache.redis_db", 0)

	viper.SetDefault("image.max_size_bytes", 10*1024*1024) // 10MB

	viper.SetDefault("log_level", "info")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	if config.Parser.MaxTextLength <= 0 {
		return fmt.Errorf("invalid parser max text length")
	}

	if config.Vision.Enabled && config.Vision.APIKey == "" {
		return fmt.Errorf("vision api key is required when vision is enabled")
	}

	return nil
}
