package config

import (
	"fmt"
	"github.com/berkocan/genelpara-api/internal/entities"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"log"
	"log/slog"
	"strings"
	"time"
)

type Config struct {
	Client     Client
	Fetcher    Fetcher
	HTTPServer HTTPServer
	Storage    Storage
	Redis      Redis
	Log        Log
}

type Client struct {
	BaseURL string        `env:"GENELPARA_BASE_URL" env-default:"https://api.genelpara.com/json/"`
	Timeout time.Duration `env:"GENELPARA_TIMEOUT" env-default:"10s"`
}

type Fetcher struct {
	Categories  []string      `env:"FETCHER_CATEGORIES" env-separator:"," env-default:"doviz,altin,kripto"`
	Symbols     []string      `env:"FETCHER_SYMBOLS" env-separator:"," env-default:"all"`
	TimeTickers time.Duration `env:"FETCHER_TIME_TICKERS" env-default:"60s"`
	MetricsPort string        `env:"FETCHER_METRICS_PORT" env-default:"9091"`
}

type HTTPServer struct {
	Port            string        `env:"HTTP_PORT" env-default:"8082"`
	Timeout         time.Duration `env:"HTTP_TIMEOUT" env-default:"2m"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	DefaultCategory string        `env:"HTTP_DEFAULT_CATEGORY" env-default:"doviz"`
	Categories      []string      `env:"HTTP_CATEGORIES" env-separator:"," env-default:"doviz,kripto,altin"`
}

type Storage struct {
	Timeout  time.Duration `env:"BD_TIMEOUT" env-default:"10s"`
	Host     string        `env:"BD_HOST" env-required:"true"`
	Port     int           `env:"BD_PORT" env-required:"true"`
	User     string        `env:"BD_USER" env-required:"true"`
	Password string        `env:"BD_PASSWORD" env-required:"true"`
	DBName   string        `env:"BD_DBNAME" env-required:"true"`
	SSLMode  string        `env:"BD_SSL_MODE" env-default:"disable"`
	Schema   string        `env:"BD_SCHEMA" env-default:"public"`
}

type Redis struct {
	Host     string        `env:"REDIS_HOST" env-default:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `env:"REDIS_TTL" env-default:"5m"`
}

type Log struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

func NewConfig() *Config {
	cfg, err := Load(".env")
	if err != nil {
		log.Fatalf("Error reading env: %v", err)
	}

	return cfg
}

// Load reads the optional dotenv files and then the environment.
func Load(files ...string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load(files...)

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Query builds the polled query from the fetcher section.
func (f Fetcher) Query() entities.RateQuery {
	return entities.ParseQuery(strings.Join(f.Categories, ","), strings.Join(f.Symbols, ","))
}

func (s Storage) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		s.Host,
		s.Port,
		s.User,
		s.Password,
		s.DBName,
		s.SSLMode,
		s.Schema,
	)
}

func (l Log) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}

	return level
}

// LogValue keeps secrets out of the startup log line.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("genelpara_base_url", c.Client.BaseURL),
		slog.Duration("genelpara_timeout", c.Client.Timeout),
		slog.String("categories", strings.Join(c.Fetcher.Categories, ",")),
		slog.String("symbols", strings.Join(c.Fetcher.Symbols, ",")),
		slog.Duration("interval", c.Fetcher.TimeTickers),
		slog.String("http_port", c.HTTPServer.Port),
		slog.String("db_host", c.Storage.Host),
		slog.String("redis_host", c.Redis.Host),
		slog.String("log_level", c.Log.Level),
	)
}
