package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Databases DatabasesConfig `mapstructure:"databases"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Assets    AssetsConfig    `mapstructure:"assets"`
	Imports   ImportsConfig   `mapstructure:"imports"`
	AWS       AWSConfig       `mapstructure:"aws"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type               ServiceType   `mapstructure:"type"`
	Port               string        `mapstructure:"port"`
	RequestTimeout     time.Duration `mapstructure:"requestTimeout"`
	CorsAllowedOrigins []string      `mapstructure:"corsAllowedOrigins"`
}

type DatabasesConfig struct {
	SQL SQLConfig `mapstructure:"sql"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	PasswordSecret   string `mapstructure:"passwordSecret"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
	MaxConns         int32  `mapstructure:"maxConns"`
}

// DSN returns the connection string, building one from the discrete fields when
// no explicit connection string is configured.
func (c SQLConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host,
		c.Username,
		c.Password,
		c.Database,
		c.Port)
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type AssetsConfig struct {
	// AllocationRetries bounds how many times a create re-allocates an asset ID
	// after losing a uniqueness race.
	AllocationRetries int `mapstructure:"allocationRetries"`
}

type ImportsConfig struct {
	MaxUploadBytes int64            `mapstructure:"maxUploadBytes"`
	Timeout        time.Duration    `mapstructure:"timeout"`
	Schedules      []ImportSchedule `mapstructure:"schedules"`
}

// ImportSchedule describes a spreadsheet on a fixed path that the worker
// ingests on a cron spec.
type ImportSchedule struct {
	Name    string `mapstructure:"name"`
	Dialect string `mapstructure:"dialect"`
	Path    string `mapstructure:"path"`
	Cron    string `mapstructure:"cron"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// LoadConfig reads settings/appsettings.yaml, or appsettings.<env>.yaml when env
// is given. Values can be overridden through environment variables, e.g.
// DATABASES_SQL_HOST.
func LoadConfig(path string, env string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	if env != "" {
		v.SetConfigName("appsettings." + env)
	} else {
		v.SetConfigName("appsettings")
	}
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(API))
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.requestTimeout", 10*time.Second)
	v.SetDefault("databases.sql.host", "localhost")
	v.SetDefault("databases.sql.port", "5432")
	v.SetDefault("databases.sql.maxConns", 5)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("assets.allocationRetries", 3)
	v.SetDefault("imports.maxUploadBytes", 10<<20)
	v.SetDefault("imports.timeout", 2*time.Minute)
	v.SetDefault("aws.region", "us-east-1")
}
