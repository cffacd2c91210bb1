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
	Addr          string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	PublicBaseURL string `yaml:"public_base_url" env:"PUBLIC_BASE_URL" env-default:"http://localhost:8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
	QueryTimeout    time.Duration `yaml:"QUERY_TIMEOUT" env:"PG_QUERY_TIMEOUT" env-default:"5s"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15m"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type Security struct {
	JWTKey      string        `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	TokenTTL    time.Duration `yaml:"TOKEN_TTL" env:"TOKEN_TTL" env-default:"24h"`
	TokenHeader string        `yaml:"TOKEN_HEADER" env:"TOKEN_HEADER" env-default:"token"`
}

// PayTR holds the gateway merchant credentials and checkout options.
type PayTR struct {
	MerchantID     string        `yaml:"MERCHANT_ID" env:"PAYTR_MERCHANT_ID" env-required:"true"`
	MerchantKey    string        `yaml:"MERCHANT_KEY" env:"PAYTR_MERCHANT_KEY" env-required:"true"`
	MerchantSalt   string        `yaml:"MERCHANT_SALT" env:"PAYTR_MERCHANT_SALT" env-required:"true"`
	TokenURL       string        `yaml:"TOKEN_URL" env:"PAYTR_TOKEN_URL" env-default:"https://www.paytr.com/odeme/api/get-token"`
	RefundURL      string        `yaml:"REFUND_URL" env:"PAYTR_REFUND_URL" env-default:"https://www.paytr.com/odeme/iade"`
	IframeURL      string        `yaml:"IFRAME_URL" env:"PAYTR_IFRAME_URL" env-default:"https://www.paytr.com/odeme/guvenli/"`
	CallbackURL    string        `yaml:"CALLBACK_URL" env:"PAYTR_CALLBACK_URL"`
	OkURL          string        `yaml:"OK_URL" env:"PAYTR_OK_URL"`
	FailURL        string        `yaml:"FAIL_URL" env:"PAYTR_FAIL_URL"`
	Currency       string        `yaml:"CURRENCY" env:"PAYTR_CURRENCY" env-default:"TL"`
	TestMode       bool          `yaml:"TEST_MODE" env:"PAYTR_TEST_MODE" env-default:"true"`
	DebugOn        bool          `yaml:"DEBUG_ON" env:"PAYTR_DEBUG_ON" env-default:"false"`
	NoInstallment  bool          `yaml:"NO_INSTALLMENT" env:"PAYTR_NO_INSTALLMENT" env-default:"false"`
	MaxInstallment int           `yaml:"MAX_INSTALLMENT" env:"PAYTR_MAX_INSTALLMENT" env-default:"0"`
	TimeoutLimit   int           `yaml:"TIMEOUT_LIMIT" env:"PAYTR_TIMEOUT_LIMIT" env-default:"30"`
	ClientLang     string        `yaml:"CLIENT_LANG" env:"PAYTR_CLIENT_LANG" env-default:"tr"`
	HTTPTimeout    time.Duration `yaml:"HTTP_TIMEOUT" env:"PAYTR_HTTP_TIMEOUT" env-default:"15s"`
}

type SendGrid struct {
	APIKey     string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail  string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL"`
	FromName   string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Storefront"`
	AdminEmail string `yaml:"ADMIN_EMAIL" env:"SENDGRID_ADMIN_EMAIL"`
	BaseURL    string `yaml:"BASE_URL" env:"SENDGRID_BASE_URL"`
}

type Orders struct {
	ReturnWindow time.Duration `yaml:"RETURN_WINDOW" env:"ORDER_RETURN_WINDOW" env-default:"336h"`
}

type Cart struct {
	MaxRetries int `yaml:"MAX_RETRIES" env:"CART_MAX_RETRIES" env-default:"3"`
}

type Tracing struct {
	Enabled     bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	Endpoint    string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT" env-default:"localhost:4318"`
	ServiceName string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"storefront"`
	Insecure    bool    `yaml:"INSECURE" env:"OTEL_INSECURE" env-default:"true"`
	SampleRatio float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Cache        CacheConfig  `yaml:"cache"`
	Security     Security     `yaml:"security"`
	PayTR        PayTR        `yaml:"paytr"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Orders       Orders       `yaml:"orders"`
	Cart         Cart         `yaml:"cart"`
	Tracing      Tracing      `yaml:"otel"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatal(err.Error())
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

	if cfg.PayTR.CallbackURL == "" {
		cfg.PayTR.CallbackURL = cfg.HTTPServer.PublicBaseURL + "/api/v1/payments/callback"
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}
