package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storefront/identity-system/internal/api"
	"github.com/storefront/identity-system/internal/core/ports"
	"github.com/storefront/identity-system/internal/infrastructure/config"
	mongodb "github.com/storefront/identity-system/internal/infrastructure/db/mongo"
	redisdb "github.com/storefront/identity-system/internal/infrastructure/db/redis"
	"github.com/storefront/identity-system/internal/infrastructure/mail"
	"github.com/storefront/identity-system/internal/infrastructure/queue"
	"github.com/storefront/identity-system/pkg/logger"
)

// @title           Identity API
// @version         1.0
// @description     Authentication, session authorization, and profile management for the storefront.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Databases ---
	db, disconnect, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = disconnect(context.Background()) }()

	if err := mongodb.NewProfileRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Mail dispatcher ---
	var sender ports.MailSender
	if cfg.Mail.APIKey != "" {
		sender = mail.NewMailgunSender(cfg.Mail.APIKey, cfg.Mail.Domain, cfg.Mail.From)
	} else {
		log.Warn().Msg("mailgun not configured, verification mail will be logged only")
		sender = mail.NewLogSender(log)
	}
	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, sender, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, cfg, dispatcher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("identity api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
