package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort      int    `mapstructure:"APP_PORT"`
	Persistence  string `mapstructure:"PERSISTENCE"` // "sqlite" or "redis"
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	OllamaURL    string `mapstructure:"OLLAMA_URL"`
	MainModel    string `mapstructure:"MAIN_MODEL"`
	SupportModel string `mapstructure:"SUPPORT_MODEL"`
	DefaultTitle string `mapstructure:"DEFAULT_TITLE"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("PERSISTENCE", "sqlite")
	viper.SetDefault("DATABASE_PATH", "/data/blinkchat.db")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("OLLAMA_URL", "http://ollama:11434")
	viper.SetDefault("MAIN_MODEL", "llama3.2")
	viper.SetDefault("SUPPORT_MODEL", "llama3.2")
	viper.SetDefault("DEFAULT_TITLE", "New Chat")
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
