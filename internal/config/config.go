package config

import (
	"log"

	"github.com/spf13/viper"

	"khatapro/internal/logger"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Business BusinessConfig `mapstructure:"business"`
	Log      logger.Config  `mapstructure:"log"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type MySQLConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers []string         `mapstructure:"brokers"`
	Topic   KafkaTopicConfig `mapstructure:"topic"`
}

type KafkaTopicConfig struct {
	Audit   string `mapstructure:"audit"`
	Billing string `mapstructure:"billing"`
}

type BusinessConfig struct {
	// BillSerialPrefix is the human-facing prefix on bill serials, e.g. AMR-8001.
	BillSerialPrefix string `mapstructure:"bill_serial_prefix"`
	// BalanceCacheTTLSeconds bounds how long a derived balance may live in
	// redis. The cache is also invalidated on every transaction write; the TTL
	// is only a backstop.
	BalanceCacheTTLSeconds int `mapstructure:"balance_cache_ttl_seconds"`
	// MaxRetryCount caps outbox publish retries before a message is parked.
	MaxRetryCount int `mapstructure:"max_retry_count"`
}

var GlobalConfig *Config

// LoadConfig reads and parses the yaml config file.
func LoadConfig(configPath string) *Config {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("business.bill_serial_prefix", "AMR")
	viper.SetDefault("business.balance_cache_ttl_seconds", 300)
	viper.SetDefault("business.max_retry_count", 3)
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		log.Fatalf("failed to parse config file: %v", err)
	}

	GlobalConfig = config
	return config
}
