package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

// Excel-экспорт и импорт каталога ограничены 10s, ответ должен успеть уйти
const minWriteTimeout = 15 * time.Second

type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer  `yaml:"http_server"`
	Storage     Storage `yaml:"storage"`
	Auth        Auth    `yaml:"auth"`
	CORS        CORS    `yaml:"cors"`
	CatalogPath string  `yaml:"catalog_path" env:"CATALOG_PATH"`
	ErrorLog    string  `yaml:"error_log" env:"ERROR_LOG" env-default:"errors.log"`

	// собранный фронтенд, пусто - только API
	StaticDir string `yaml:"static_dir" env:"STATIC_DIR"`
}

type HTTPServer struct {
	Address      string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout      time.Duration `yaml:"timeout" env-default:"4s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Storage struct {
	// json | mysql | postgres | sqlite
	Driver  string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"json"`
	Path    string `yaml:"path" env:"STORAGE_PATH" env-default:"./data"`
	DSN     string `yaml:"dsn" env:"STORAGE_DSN"`
	Migrate bool   `yaml:"migrate" env:"STORAGE_MIGRATE" env-default:"true"`
}

type Auth struct {
	JWTSecret      string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL       time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"12h"`
	PasswordScheme string        `yaml:"password_scheme" env:"PASSWORD_SCHEME" env-default:"bcrypt"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

const (
	DriverJSON     = "json"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads .env (if any), then the YAML file at CONFIG_PATH with
// environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.HTTPServer.WriteTimeout < minWriteTimeout {
		return fmt.Errorf("http_server.write_timeout must be at least %s, got %s", minWriteTimeout, c.HTTPServer.WriteTimeout)
	}

	switch c.Storage.Driver {
	case DriverJSON:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for driver %s", c.Storage.Driver)
		}
	case DriverMySQL, DriverPostgres, DriverSQLite:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for driver %s", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
