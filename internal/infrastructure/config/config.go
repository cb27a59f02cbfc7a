package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AuthEnabled toggles token validation at the HTTP boundary. Disabled is
	// a test/deployment convenience; every request is then anonymous.
	AuthEnabled bool `env:"AUTH_ENABLED, default=true"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
	Seed  SeedConfig
}

type JWTConfig struct {
	// PEM key files. Both empty in development means an ephemeral pair is
	// generated at startup; anywhere else missing keys are fatal.
	PrivateKeyFile string        `env:"JWT_PRIVATE_KEY_FILE"`
	PublicKeyFile  string        `env:"JWT_PUBLIC_KEY_FILE"`
	TTL            time.Duration `env:"JWT_TTL, default=30m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SeedConfig provisions the bootstrap admin account. Seeding only runs when a
// password is set.
type SeedConfig struct {
	AdminLoginID  string `env:"SEED_ADMIN_LOGIN_ID, default=admin"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	AdminName     string `env:"SEED_ADMIN_NAME"`
}

// Load reads configuration from environment variables using go-envconfig.
// Configuration failure is fatal at startup, never deferred to request time.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
