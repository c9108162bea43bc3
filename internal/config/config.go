// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"` // sqlite のファイルパス、または postgres:// のURL
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	App struct {
		ReviewBatchSize int `mapstructure:"review_batch_size"`
	} `mapstructure:"app"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数で上書き可能にする (例: APP_SERVER_PORT)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "APP_DATABASE_URL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.App.ReviewBatchSize <= 0 {
		Cfg.App.ReviewBatchSize = DefaultReviewBatchSize
	}
	if Cfg.Database.URL == "" {
		log.Printf("Database URL not set, using default '%s'", DefaultDatabaseURL)
		Cfg.Database.URL = DefaultDatabaseURL
	}
	if len(Cfg.CORS.AllowedOrigins) == 0 {
		Cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(Cfg.CORS.AllowedMethods) == 0 {
		Cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(Cfg.CORS.AllowedHeaders) == 0 {
		Cfg.CORS.AllowedHeaders = []string{"Accept", "Content-Type"}
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Review Batch Size: %d", Cfg.App.ReviewBatchSize)

	return nil
}
