package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Env            string         `yaml:"env" env:"ENV" env-default:"local"`
	Server         ServerConfig   `yaml:"server"`
	Storage        StorageConfig  `yaml:"storage"`
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	MongoConfig    MongoConfig    `yaml:"mongoConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	S3Config       S3Config       `yaml:"s3Config"`
	JWT            JWTConfig      `yaml:"jwt"`
	Password       PasswordConfig `yaml:"password"`
	Upload         UploadConfig   `yaml:"upload"`
	Tea            TeaConfig      `yaml:"tea"`
}

// LoadConfig : читает YAML файл (если путь указан) и накладывает поверх переменные окружения.
// Конфигурация читается один раз при старте и дальше не меняется.
func LoadConfig(path string) (*AppConfig, error) {
	var cfg AppConfig

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}

		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("ошибка разбора YAML: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка чтения переменных окружения: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate : базовая проверка значений конфигурации
func (c *AppConfig) Validate() error {
	if c.JWT.AccessTokenSecret == "" || c.JWT.RefreshTokenSecret == "" {
		return errors.New("jwt: access_token_secret и refresh_token_secret обязательны")
	}
	if c.JWT.AccessTokenSecret == c.JWT.RefreshTokenSecret {
		return errors.New("jwt: секреты access и refresh токенов должны различаться")
	}
	if c.JWT.AccessTokenTTL <= 0 || c.JWT.RefreshTokenTTL <= 0 {
		return errors.New("jwt: время жизни токенов должно быть больше нуля")
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.DatabaseConfig.DSN == "" {
			return errors.New("databaseConfig.dsn обязателен для storage.driver=postgres")
		}
	case StorageDriverMongo:
		if c.MongoConfig.URI == "" {
			return errors.New("mongoConfig.uri обязателен для storage.driver=mongo")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("неизвестный storage.driver: %q", c.Storage.Driver)
	}

	switch c.Tea.Driver {
	case TeaDriverMemory, TeaDriverRedis:
	default:
		return fmt.Errorf("неизвестный tea.driver: %q", c.Tea.Driver)
	}

	if c.Password.Cost < 4 || c.Password.Cost > 31 {
		return fmt.Errorf("password.cost вне допустимого диапазона: %d", c.Password.Cost)
	}

	return nil
}

// IsProduction : флаг для secure-cookie
func (c *AppConfig) IsProduction() bool {
	return c.Env == EnvProd
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:              serverAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
