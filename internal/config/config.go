package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env-default:"development"` // environment
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	OrdersAPI  OrdersAPIConfig  `yaml:"orders_api"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// OrdersAPIConfig основной источник заказов (REST API бэкенда магазина)
type OrdersAPIConfig struct {
	BaseURL string        `yaml:"base_url" env:"ORDERS_API_URL" validate:"required,url"`
	Token   string        `yaml:"-" env:"ORDERS_API_TOKEN"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

// MongoConfig резервный источник заказов
type MongoConfig struct {
	URI            string        `yaml:"-" env:"MONGO_URI" env-required:"true"`
	Database       string        `yaml:"database" validate:"required"`
	Collection     string        `yaml:"collection" env-default:"orders"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env-default:"5s"`
}

// RedisConfig канал уведомлений дашборда. Пустой адрес отключает публикацию.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
	Channel  string `yaml:"channel" env-default:"admin:notifications"`
}

// JWTConfig настройка jwt
type JWTConfig struct {
	Secret   string `yaml:"-" env:"JWT_SECRET" env-required:"true"`
	TokenTTL int    `yaml:"token_ttl" env-default:"60"`
}

// MetricsConfig адрес отдельного листенера для /metrics
type MetricsConfig struct {
	Address string `yaml:"address" env-default:"localhost:9090"`
}

// MustLoad - если не загружаем - паникуем
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s: %v", configPath, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		log.Fatalf("invalid config %s: %v", configPath, err)
	}

	return &cfg
}
