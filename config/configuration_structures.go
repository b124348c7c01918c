package config

import (
	"net"
	"time"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
	StorageDriverMemory   = "memory"

	TeaDriverMemory = "memory"
	TeaDriverRedis  = "redis"
)

type ServerConfig struct {
	Host       string `yaml:"host" env:"HOST" env-default:"0.0.0.0"`
	Port       string `yaml:"port" env:"PORT" env-default:"8000"`
	CORSOrigin string `yaml:"cors_origin" env:"CORS_ORIGIN" env-default:"*"`
	// JSONBodyLimit : ограничение размера JSON тела запроса (в оригинале 16kb)
	JSONBodyLimit int64 `yaml:"json_body_limit" env:"JSON_BODY_LIMIT" env-default:"16384"`
}

// Addr возвращает адрес в формате host:port
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"DATABASE_DSN"`
}

type MongoConfig struct {
	URI      string `yaml:"uri" env:"MONGODB_URI"`
	Database string `yaml:"database" env:"MONGODB_DATABASE" env-default:"vidtube"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket" env:"S3_BUCKET" env-default:"vidtube"`
	Region          string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT"`
	Local           bool   `yaml:"local" env:"S3_LOCAL"`
	AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID" env-default:"minioadmin"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY" env-default:"minioadmin"`
	// PublicBaseURL : префикс публичных ссылок на загруженные файлы
	PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
	KeyPrefix     string `yaml:"key_prefix" env:"S3_KEY_PREFIX" env-default:"media"`
}

type JWTConfig struct {
	Issuer             string        `yaml:"issuer" env:"JWT_ISSUER" env-default:"vidtube"`
	AccessTokenSecret  string        `yaml:"access_token_secret" env:"ACCESS_TOKEN_SECRET"`
	AccessTokenTTL     time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_EXPIRY" env-default:"15m"`
	RefreshTokenSecret string        `yaml:"refresh_token_secret" env:"REFRESH_TOKEN_SECRET"`
	RefreshTokenTTL    time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_EXPIRY" env-default:"240h"`
}

type PasswordConfig struct {
	Cost int `yaml:"cost" env:"PASSWORD_COST" env-default:"10"`
}

type UploadConfig struct {
	TempDir      string `yaml:"temp_dir" env:"UPLOAD_TEMP_DIR" env-default:"./public/temp"`
	MaxSizeBytes int64  `yaml:"max_size_bytes" env:"UPLOAD_MAX_SIZE" env-default:"10485760"`
}

type TeaConfig struct {
	Driver string `yaml:"driver" env:"TEA_DRIVER" env-default:"memory"`
}
