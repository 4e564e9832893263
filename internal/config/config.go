// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env string `yaml:"env" env:"ENV" env-default:"local"`
	// APIURL адрес бэкенда. Пустое значение означает относительный /api того же origin.
	APIURL       string `yaml:"api_url" env:"ADMIN_API_URL"`
	PublicOrigin string `yaml:"public_origin" env:"PUBLIC_ORIGIN" env-default:"http://localhost"`
	APIClient    `yaml:"api_client"`
	HTTPServer   `yaml:"http_server"`
	Session      `yaml:"session"`
	Audit        `yaml:"audit"`
	LoginLimit   `yaml:"login_limit"`
}

// APIClient структура для настройки http-клиента бэкенда
type APIClient struct {
	TimeoutClient time.Duration `yaml:"timeoutclient" env:"API_TIMEOUT"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:"localhost:8081"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Session структура для выбора хранилища сессии администратора
type Session struct {
	Store           string `yaml:"store" env:"SESSION_STORE" env-default:"file"`
	FilePath        string `yaml:"file_path" env:"SESSION_FILE" env-default:".admin-session.json"`
	CookieName      string `yaml:"cookie_name" env:"SESSION_COOKIE" env-default:"admin_session"`
	CookieSecure    bool   `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
	RedisConnection `yaml:"redis_connection"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// Audit структура для публикации аудита в RabbitMQ. Пустой AMQPURL отключает аудит.
type Audit struct {
	AMQPURL    string `yaml:"amqp_url" env:"AUDIT_AMQP_URL"`
	Exchange   string `yaml:"exchange" env-default:"admin.audit"`
	RoutingKey string `yaml:"routing_key" env-default:"admin.actions"`
}

// LoginLimit ограничение частоты попыток входа
type LoginLimit struct {
	RPS   float64 `yaml:"rps" env-default:"1"`
	Burst int     `yaml:"burst" env-default:"5"`
}

// Load читает конфиг из файла CONFIG_PATH, если он задан, иначе только из окружения.
func Load() (*Config, error) {
	const op = "config.Load"
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &cfg, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига, завершает процесс при ошибке
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"APIURL: %s\n"+
			"PublicOrigin: %s\n"+
			"APIClient:\n"+
			"  Timeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Session:\n"+
			"  Store: %s\n"+
			"  FilePath: %s\n"+
			"  Cookie: %s (secure=%t)\n"+
			"  RedisAddr: %s\n"+
			"Audit:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n",
		c.Env,
		c.APIURL,
		c.PublicOrigin,
		c.TimeoutClient,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Store,
		c.FilePath,
		c.CookieName,
		c.CookieSecure,
		c.AddressRedis,
		c.AMQPURL != "",
		c.Exchange,
	)
}
