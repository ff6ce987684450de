package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// DatabaseConfig selects the store. Driver is one of sqlite, postgres or mongo;
// DSN is used by the relational drivers, URI and Name by mongo.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

// CORSConfig lists allowed origins; empty allows every origin.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	// Set the path to look for the config file in
	v.AddConfigPath(path)
	// Set the name of the config file (without extension)
	v.SetConfigName("config")
	// Set the type of the config file
	v.SetConfigType("yaml")

	// --- Environment Variable Handling ---
	v.AutomaticEnv()
	// Use replacer for nested keys e.g., server.address -> SERVER_ADDRESS
	// database.driver -> DATABASE_DRIVER
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// --- Set default values ---
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.driver", "sqlite")     // Local file store unless told otherwise
	v.SetDefault("database.dsn", "exercicios.db") // Used by sqlite and postgres
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "exercicios")
	v.SetDefault("log.mode", "development")
	v.SetDefault("cors.allow_origins", []string{}) // Empty allows every origin

	// --- Read Config File ---
	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// Config file not found; defaults and env vars only
		err = nil
	} else if err != nil {
		// Some other error occurred reading the config file
		return
	}

	// --- Unmarshal Config ---
	if err = v.Unmarshal(&config); err != nil {
		return
	}
	// Driver names are matched case-insensitively by openStore
	config.Database.Driver = strings.ToLower(strings.TrimSpace(config.Database.Driver))
	return config, nil
}
