// Package main is the entry point for the publishing API. It loads
// configuration, connects to the backing services, wires the service layer,
// and runs the HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blog-escritores/publishing-api/internal/api"
	"github.com/blog-escritores/publishing-api/internal/infrastructure/config"
	mongodb "github.com/blog-escritores/publishing-api/internal/infrastructure/db/mongo"
	redisdb "github.com/blog-escritores/publishing-api/internal/infrastructure/db/redis"
	"github.com/blog-escritores/publishing-api/internal/infrastructure/identity"
	"github.com/blog-escritores/publishing-api/internal/infrastructure/mail"
	"github.com/blog-escritores/publishing-api/internal/infrastructure/queue"
	"github.com/blog-escritores/publishing-api/internal/infrastructure/storage"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
	"github.com/blog-escritores/publishing-api/internal/core/service"
	"github.com/blog-escritores/publishing-api/pkg/logger"
)

const sessionTokenTTL = 24 * time.Hour

// @title        Publishing API
// @version      1.0
// @description  Content publishing platform for a writers' collective.
// @BasePath     /v1
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.Env == "development", nil)
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting publishing api")

	ctx := context.Background()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	articleRepo := mongodb.NewArticleRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	credentialRepo := mongodb.NewCredentialRepository(db)
	for _, fn := range []func(context.Context) error{
		articleRepo.EnsureIndexes,
		profileRepo.EnsureIndexes,
		credentialRepo.EnsureIndexes,
	} {
		if err := fn(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()
	resetTokens := redisdb.NewResetTokenStore(rdb)

	// --- Object storage (optional; uploads report unavailable without it) ---
	var objectStore ports.ObjectStore
	s3Client, err := storage.New(storage.Config{
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Bucket:    cfg.S3.Bucket,
		PublicURL: cfg.S3.PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object storage initialisation failed")
	}
	if s3Client != nil {
		objectStore = s3Client
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("object storage connected")
	} else {
		log.Warn().Msg("object storage not configured, media uploads disabled")
	}

	// --- Mailer (falls back to log-only delivery without an SMTP relay) ---
	var mailer ports.Mailer
	if smtp := mail.NewSMTP(mail.Config{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		From:      cfg.SMTP.From,
		ContactTo: cfg.SMTP.ContactTo,
	}); smtp != nil {
		mailer = smtp
	} else {
		log.Warn().Msg("smtp not configured, mail goes to the log")
		mailer = mail.NewLog(log)
	}

	// --- Contact delivery workers ---
	dispatcherCtx, stopDispatcher := context.WithCancel(ctx)
	defer stopDispatcher()
	dispatcher := queue.NewDispatcher(cfg.MailWorkers, mailer, log)
	dispatcher.Start(dispatcherCtx)

	// --- Identity gateway ---
	gateway := identity.NewGateway(credentialRepo, resetTokens, mailer, cfg.JWTSecret, cfg.BaseURL, sessionTokenTTL, log)

	// --- Services ---
	authorizer := service.NewAuthorizer(profileRepo, log)
	authService := service.NewAuthService(gateway, profileRepo, log)
	articleService := service.NewArticleService(articleRepo, profileRepo, authorizer, log)
	profileService := service.NewProfileService(profileRepo, articleRepo, authorizer, log)
	provisioningService := service.NewProvisioningService(gateway, profileRepo, authorizer, cfg.BaseURL, log)

	// --- Router ---
	e := api.NewRouter(api.Deps{
		Auth:         authService,
		Articles:     articleService,
		Profiles:     profileService,
		Provisioning: provisioningService,
		Verifier:     gateway,
		Resolver:     authorizer,
		ObjectStore:  objectStore,
		Contact:      dispatcher,
		Mongo:        db,
		Redis:        rdb,
		Log:          log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shut down")
	}
	stopDispatcher()
	log.Info().Msg("server stopped")
}
