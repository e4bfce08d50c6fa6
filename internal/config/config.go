package config

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration from environment.
type Config struct {
	HTTPPort    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DBPoolSize  int
	RedisURL    string
	RedisPool   int
	CacheTTL    int // seconds
	KafkaBroker []string
	KafkaTopic  string
	KafkaGroup  string
	LogLevel    string
	CORSOrigins []string
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// Get returns the application config (loads once from .env and the environment).
func Get() *Config {
	cfgOnce.Do(func() {
		// A missing .env is fine; real env vars always win.
		_ = godotenv.Load()
		cfg = Load(newViper())
	})
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", "3001")
	v.SetDefault("database_url", "")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "asset_manager")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_pool_size", 20)
	v.SetDefault("redis_url", "")
	v.SetDefault("redis_pool_size", 50)
	v.SetDefault("cache_ttl_sec", 60)
	v.SetDefault("kafka_brokers", "")
	v.SetDefault("kafka_topic", "inventory-changes")
	v.SetDefault("kafka_group", "inventory-cache")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_origins", "*")
	return v
}

// Load builds a Config from an already prepared viper instance.
func Load(v *viper.Viper) *Config {
	return &Config{
		HTTPPort:    v.GetString("port"),
		DatabaseURL: v.GetString("database_url"),
		DBHost:      v.GetString("db_host"),
		DBPort:      v.GetString("db_port"),
		DBUser:      v.GetString("db_user"),
		DBPassword:  v.GetString("db_password"),
		DBName:      v.GetString("db_name"),
		DBSSLMode:   v.GetString("db_sslmode"),
		DBPoolSize:  positive(v.GetInt("db_pool_size"), 20),
		RedisURL:    v.GetString("redis_url"),
		RedisPool:   positive(v.GetInt("redis_pool_size"), 50),
		CacheTTL:    positive(v.GetInt("cache_ttl_sec"), 60),
		KafkaBroker: splitList(v.GetString("kafka_brokers")),
		KafkaTopic:  v.GetString("kafka_topic"),
		KafkaGroup:  v.GetString("kafka_group"),
		LogLevel:    v.GetString("log_level"),
		CORSOrigins: splitList(v.GetString("cors_origins")),
	}
}

// DSN returns DATABASE_URL when set, otherwise a postgres URL built from the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else {
		u.User = url.User(c.DBUser)
	}
	return u.String()
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

func positive(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
