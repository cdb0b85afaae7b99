package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Store     StoreConfig     `mapstructure:"store"`
	Databases DatabasesConfig `mapstructure:"databases"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	AWS       AWSConfig       `mapstructure:"aws"`
}

type ServiceConfig struct {
	Port string `mapstructure:"port"`
}

type StoreBackend string

const (
	POSTGRES StoreBackend = "postgres"
	MEMORY   StoreBackend = "memory"
)

type StoreConfig struct {
	Backend StoreBackend `mapstructure:"backend"`
}

type DatabasesConfig struct {
	SQL SQLConfig `mapstructure:"sql"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// AWSConfig enables resolving the database password from Secrets Manager
// instead of keeping it in the settings file. An empty secret id disables it.
type AWSConfig struct {
	Region             string `mapstructure:"region"`
	DBPasswordSecretID string `mapstructure:"dbPasswordSecretId"`
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = POSTGRES
	}
	return &cfg, nil
}
