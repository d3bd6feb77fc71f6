package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"disable"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-required:"true"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-required:"true"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

// Storage selects the key-value backend the repositories run on.
type Storage struct {
	Backend string `yaml:"BACKEND" env:"STORAGE_BACKEND" env-default:"redis"`
}

// StoreLocation is the fixed shop coordinate pair and the service boundary
// around it.
type StoreLocation struct {
	Name                  string   `yaml:"NAME" env:"STORE_NAME" env-default:"FreshCuts Butchery"`
	Latitude              float64  `yaml:"LATITUDE" env:"STORE_LATITUDE" env-required:"true"`
	Longitude             float64  `yaml:"LONGITUDE" env:"STORE_LONGITUDE" env-required:"true"`
	RadiusKm              float64  `yaml:"RADIUS_KM" env:"STORE_RADIUS_KM" env-default:"5.0"`
	ServiceableLocalities []string `yaml:"SERVICEABLE_LOCALITIES" env:"STORE_SERVICEABLE_LOCALITIES"`
}

type OTP struct {
	TTL        time.Duration `yaml:"TTL" env:"OTP_TTL" env-default:"5m"`
	SMSLatency time.Duration `yaml:"SMS_LATENCY" env:"OTP_SMS_LATENCY" env-default:"800ms"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15m"`
}

type Security struct {
	JWTKey         string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	JWTExpiryHours int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"24"`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"orders@freshcuts.example"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"FreshCuts"`
}

type Otel struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"meat-delivery-platform"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT" env-default:"localhost:4318"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Geocode struct {
	BaseURL string        `yaml:"BASE_URL" env:"GEOCODE_BASE_URL" env-default:"https://nominatim.openstreetmap.org"`
	Timeout time.Duration `yaml:"TIMEOUT" env:"GEOCODE_TIMEOUT" env-default:"3s"`
	Enabled bool          `yaml:"ENABLED" env:"GEOCODE_ENABLED" env-default:"true"`
}

type Catalog struct {
	Path string `yaml:"path" env:"CATALOG_PATH" env-default:"./config/catalog.yaml"`
}

type Config struct {
	Env           string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer    `yaml:"http_server"`
	Database      Database      `yaml:"database"`
	RedisConnect  RedisConnect  `yaml:"redis"`
	Storage       Storage       `yaml:"storage"`
	StoreLocation StoreLocation `yaml:"store"`
	OTP           OTP           `yaml:"otp"`
	RateConfig    RateConfig    `yaml:"rateConfig"`
	Security      Security      `yaml:"security"`
	SendGrid      SendGrid      `yaml:"sendgrid"`
	Otel          Otel          `yaml:"otel"`
	Geocode       Geocode       `yaml:"geocode"`
	Catalog       Catalog       `yaml:"catalog"`
}

const defaultConfigPath = "./config/local.yaml"

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flagPath := flag.String("config", "", "path to the config file")

		flag.Parse()

		configPath = *flagPath

		if configPath == "" {
			configPath = defaultConfigPath
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not load config: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
