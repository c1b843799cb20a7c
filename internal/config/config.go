package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Storage  *StorageConfig  `mapstructure:"storage"`
	Redis    *RedisConfig    `mapstructure:"redis"`
	AMQP     *AMQPConfig     `mapstructure:"amqp"`
}

type APIConfig struct {
	Environment        string `mapstructure:"environment"`
	BaseURL            string `mapstructure:"base_url"`
	Port               string `mapstructure:"port"`
	JWTSigningKey      string `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
}

type StorageConfig struct {
	Root          string `mapstructure:"root"`
	SigningKey    string `mapstructure:"signing_key"`
	MaxUploadMB   int64  `mapstructure:"max_upload_mb"`
	PublicBuckets string `mapstructure:"public_buckets"`
}

// RedisConfig is optional. When Addr is empty the realtime hub runs
// in-process only, without cross-instance fan-out.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AMQPConfig is optional. When URL is empty notification events are dropped.
type AMQPConfig struct {
	URL string `mapstructure:"url"`
}

func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := AppConfig{}
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	return &conf, nil
}

// Watch re-reads the config file on change so settings like gin mode can be
// flipped without a restart. Structural settings (ports, DSNs) still need one.
func Watch(onChange func(*AppConfig)) {
	viper.OnConfigChange(func(in fsnotify.Event) {
		conf := AppConfig{}
		if err := viper.Unmarshal(&conf); err != nil {
			zap.L().Warn("failed to reload config", zap.Error(err))
			return
		}

		onChange(&conf)
	})
	viper.WatchConfig()
}
