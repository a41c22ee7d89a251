package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Species   SpeciesConfig   `mapstructure:"species"`
	Learning  LearningConfig  `mapstructure:"learning"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type SpeciesConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	APIToken       string `mapstructure:"api_token"`
	Locale         string `mapstructure:"locale" validate:"omitempty,locale"`
	CacheDirectory string `mapstructure:"cache_directory"`
	RetryAttempts  uint   `mapstructure:"retry_attempts"`
}

type LearningConfig struct {
	LearnerID       int64   `mapstructure:"learner_id" validate:"gt=0"`
	// TimeZone decides which calendar day a practice belongs to; empty means the local zone.
	TimeZone        string  `mapstructure:"time_zone" validate:"omitempty,timezone"`
	BatchSize       int     `mapstructure:"batch_size" validate:"gte=1,lte=50"`
	RecallThreshold float64 `mapstructure:"recall_threshold" validate:"gt=0,lte=1"`
}

type OutputsConfig struct {
	ExportDirectory string `mapstructure:"export_directory"`
	ReportDirectory string `mapstructure:"report_directory"`
}

type TemplatesConfig struct {
	// ReportTemplate is optional; the embedded template is used when empty.
	ReportTemplate string `mapstructure:"report_template" validate:"omitempty,file"`
}

type MetricsConfig struct {
	Address string `mapstructure:"address" validate:"omitempty,hostname_port"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

// Location resolves TimeZone, falling back to time.Local.
func (c LearningConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%s) > %w", c.TimeZone, err)
	}
	return loc, nil
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/birdling")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "birdling")
	v.SetDefault("database.username", "user")
	v.SetDefault("species.base_url", "https://api.ebird.org/v2")
	v.SetDefault("species.locale", "de")
	v.SetDefault("species.cache_directory", filepath.Join("cache", "species"))
	v.SetDefault("species.retry_attempts", 2)
	v.SetDefault("learning.learner_id", 1)
	v.SetDefault("learning.batch_size", 5)
	v.SetDefault("learning.recall_threshold", 0.8)
	v.SetDefault("outputs.export_directory", filepath.Join("outputs", "export"))
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "report"))
	v.SetDefault("templates.report_template", "")

	// Secrets come from the environment only
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("species.api_token", "EBIRD_API_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind EBIRD_API_TOKEN environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
