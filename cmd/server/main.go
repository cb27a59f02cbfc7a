package main

import (
	"context"
	"crypto/rsa"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/drawforge/auth-service/internal/api"
	"github.com/drawforge/auth-service/internal/core/service"
	"github.com/drawforge/auth-service/internal/infrastructure/config"
	mongodb "github.com/drawforge/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/drawforge/auth-service/internal/infrastructure/db/redis"
	"github.com/drawforge/auth-service/pkg/logger"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in internal/core.
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	// Key material is loaded once and held immutably for the process
	// lifetime; failure here is fatal, never a per-request error.
	privKey, pubKey := loadKeys(cfg, log)

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	hasher := service.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := service.NewTokenService(privKey, pubKey, cfg.JWT.TTL)
	authService := service.NewAuthService(userRepo, hasher, tokens, log)

	if cfg.Seed.AdminPassword != "" {
		seeded, err := service.EnsureUser(ctx, userRepo, hasher,
			cfg.Seed.AdminLoginID, cfg.Seed.AdminPassword, cfg.Seed.AdminEmail, cfg.Seed.AdminName)
		if err != nil {
			log.Fatal().Err(err).Msg("admin seeding failed")
		}
		log.Info().Int64("user_id", seeded.ID).Str("login_id", seeded.LoginID).Msg("admin account seeded")
	}

	e := api.NewRouter(api.RouterConfig{
		AuthService:   authService,
		Tokens:        tokens,
		CookieTTL:     cfg.JWT.TTL,
		AuthEnabled:   cfg.AuthEnabled,
		Logger:        log,
		Mongo:         db,
		Redis:         rdb,
		EnableMetrics: true,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("port", cfg.Port).Bool("auth_enabled", cfg.AuthEnabled).Msg("auth service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}
}

// loadKeys resolves the RSA signing keys: configured PEM files when present,
// an ephemeral generated pair in development when none are configured.
func loadKeys(cfg *config.Config, log zerolog.Logger) (*rsa.PrivateKey, *rsa.PublicKey) {
	if cfg.JWT.PublicKeyFile != "" {
		priv, pub, err := service.LoadRSAKeyPair(cfg.JWT.PrivateKeyFile, cfg.JWT.PublicKeyFile)
		if err != nil {
			log.Fatal().Err(err).Msg("key loading failed")
		}
		return priv, pub
	}

	if cfg.Env != "development" {
		log.Fatal().Msg("JWT_PUBLIC_KEY_FILE is required outside development")
	}

	priv, pub, err := service.GenerateRSAKeyPair()
	if err != nil {
		log.Fatal().Err(err).Msg("dev key generation failed")
	}
	log.Warn().Msg("no key files configured; generated ephemeral dev keys, tokens will not survive restarts")
	return priv, pub
}
