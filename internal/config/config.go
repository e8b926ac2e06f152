package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string `mapstructure:"port"`

	// Database configuration. DB_TYPE none runs without a database.
	DBType               string `mapstructure:"db_type"` // none, mysql, postgres, sqlite, sqlserver
	DBHost               string `mapstructure:"db_host"`
	DBPort               string `mapstructure:"db_port"`
	DBDatabase           string `mapstructure:"db_database"`
	DBAppUser            string `mapstructure:"db_app_user"`
	DBAppPassword        string `mapstructure:"db_app_password"`
	DBAppConnectionLimit int    `mapstructure:"db_app_connection_limit"`

	// Metadata configuration
	MetadataVersion  string `mapstructure:"metadata_version"`
	NamingConvention string `mapstructure:"naming_convention"`
	ModelNamespace   string `mapstructure:"model_namespace"`
	ConstraintsFile  string `mapstructure:"constraints_file"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // json or console
}

var defaults = map[string]any{
	"port":                    "3000",
	"db_type":                 "none",
	"db_host":                 "localhost",
	"db_port":                 "3306",
	"db_database":             "",
	"db_app_user":             "",
	"db_app_password":         "",
	"db_app_connection_limit": 5,
	"metadata_version":        "1.0.5",
	"naming_convention":       "camelCase",
	"model_namespace":         "",
	"constraints_file":        "",
	"log_level":               "info",
	"log_format":              "json",
}

// Load loads configuration from environment variables and an optional
// breezemeta.yaml in the working directory. Environment wins. When ENV_FILE
// is set, that dotenv file is loaded first.
func Load() (*Config, error) {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigName("breezemeta")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// HasDatabase reports whether a database connection is configured
func (c *Config) HasDatabase() bool {
	return c.DBType != "" && c.DBType != "none"
}

func (c *Config) validate() error {
	if !c.HasDatabase() {
		return nil
	}
	if c.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if c.DBType != "sqlite" && c.DBAppUser == "" {
		return fmt.Errorf("DB_APP_USER is required")
	}
	if c.DBAppConnectionLimit < 1 {
		return fmt.Errorf("DB_APP_CONNECTION_LIMIT must be positive, got %d", c.DBAppConnectionLimit)
	}
	return nil
}
