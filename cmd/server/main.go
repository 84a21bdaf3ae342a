package main

import (
	"context"
	"crypto/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/shopsync/backend/internal/application/catalog"
	listingapp "github.com/shopsync/backend/internal/application/listing"
	"github.com/shopsync/backend/internal/domain/listing"
	"github.com/shopsync/backend/internal/infrastructure/auth"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"github.com/shopsync/backend/internal/infrastructure/ecommerce"
	"github.com/shopsync/backend/internal/infrastructure/lock"
	"github.com/shopsync/backend/internal/infrastructure/logger"
	"github.com/shopsync/backend/internal/infrastructure/persistence"
	"github.com/shopsync/backend/internal/infrastructure/secrets"
	"github.com/shopsync/backend/internal/interfaces/http/handler"
	"github.com/shopsync/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting listing sync backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	platformRepo := persistence.NewGormPlatformRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	credentialRepo := persistence.NewGormCredentialRepository(db.DB)
	listingRepo := persistence.NewGormListingRepository(db.DB)

	// Credential sealing. Development falls back to an ephemeral key, which
	// invalidates stored credentials on every restart.
	sealer, err := buildSealer(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize credential sealer", zap.Error(err))
	}

	// Pair lock: Redis when configured, in-process otherwise
	var pairLock listing.PairLocker
	if cfg.Redis.Enabled {
		redisLock, err := lock.NewRedisPairLock(lock.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisLock.Close(); err != nil {
				log.Error("Error closing Redis pair lock", zap.Error(err))
			}
		}()
		pairLock = redisLock
		log.Info("Redis pair lock enabled",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		pairLock = lock.NewInMemoryPairLock()
	}

	adapterFactory := ecommerce.NewFactory()

	// Application services
	orchestrator := listingapp.NewOrchestrator(
		productRepo,
		platformRepo,
		templateRepo,
		credentialRepo,
		listingRepo,
		adapterFactory,
		sealer,
		pairLock,
		log,
	)
	templateService := listingapp.NewTemplateService(templateRepo, platformRepo, log)
	credentialService := listingapp.NewCredentialService(credentialRepo, platformRepo, adapterFactory, sealer, log)
	productService := catalogapp.NewProductService(productRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP layer
	engine := router.New(cfg, jwtService, log, router.Handlers{
		System:     handler.NewSystemHandler(db, version),
		Platform:   handler.NewPlatformHandler(platformRepo),
		Credential: handler.NewCredentialHandler(credentialService, orchestrator),
		Template:   handler.NewTemplateHandler(templateService),
		Product:    handler.NewProductHandler(productService),
		Listing:    handler.NewListingHandler(orchestrator, listingRepo),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildSealer constructs the credential sealer from the configured key.
// Production requires a key; validation in config.Load enforces that.
func buildSealer(cfg *config.Config, log *zap.Logger) (*secrets.Sealer, error) {
	if cfg.Secrets.SealingKeyHex != "" {
		return secrets.NewSealerFromHex(cfg.Secrets.SealingKeyHex)
	}

	key := make([]byte, secrets.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	log.Warn("No sealing key configured, using an ephemeral key",
		zap.String("hint", "set secrets.sealing_key to keep stored credentials readable across restarts"),
	)
	return secrets.NewSealer(key)
}
