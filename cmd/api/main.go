package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stayhub/hotel-saas/internal/api"
	"github.com/stayhub/hotel-saas/internal/core/token"
	"github.com/stayhub/hotel-saas/internal/infrastructure/config"
	mongodb "github.com/stayhub/hotel-saas/internal/infrastructure/db/mongo"
	redisdb "github.com/stayhub/hotel-saas/internal/infrastructure/db/redis"
	"github.com/stayhub/hotel-saas/internal/infrastructure/email"
	"github.com/stayhub/hotel-saas/internal/infrastructure/notify"
	"github.com/stayhub/hotel-saas/internal/infrastructure/zalo"
	"github.com/stayhub/hotel-saas/pkg/logger"

	_ "github.com/stayhub/hotel-saas/docs"
)

// @title        StayHub Hotel SaaS API
// @version      1.0
// @description  Multi-tenant hotel booking backend with Zalo OA integration.
// @BasePath     /api/v1
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not initialised yet.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	issuer := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	mailer := email.NewMailer(email.Config{
		Enabled:  cfg.SMTP.Enabled,
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, log)

	tokenCache := redisdb.NewOATokenCache(rdb, cfg.Zalo.AppID)
	tokenSource := zalo.NewCachedTokenSource(tokenCache, cfg.Zalo.AppID, cfg.Zalo.AppSecret, log)
	messenger := zalo.NewClient(zalo.Config{
		BaseURL:           cfg.Zalo.BaseURL,
		MiniAppURL:        cfg.Zalo.MiniAppURL,
		BookingTemplateID: cfg.Zalo.BookingTemplateID,
		Timeout:           cfg.Zalo.RequestTimeout,
		MaxRetries:        cfg.Zalo.MaxRetries,
	}, tokenSource, log)

	dispatcher := notify.NewDispatcher(0, messenger, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		DB:             db,
		Redis:          rdb,
		Tokens:         issuer,
		Mailer:         mailer,
		Messenger:      messenger,
		Dispatcher:     dispatcher,
		Deduper:        redisdb.NewEventDeduper(rdb),
		ZaloAppID:      cfg.Zalo.AppID,
		ZaloAppSecret:  cfg.Zalo.AppSecret,
		ZaloTenantID:   cfg.Zalo.TenantID,
		ResetTicketTTL: cfg.Auth.ResetTicketTTL,
		Logger:         log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes builds the unique and query indexes every repository relies
// on. Index creation is idempotent, so this runs on every startup.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexed := []interface {
		EnsureIndexes(ctx context.Context) error
	}{
		mongodb.NewUserRepository(db),
		mongodb.NewHotelRepository(db),
		mongodb.NewRoomRepository(db),
		mongodb.NewBookingRepository(db),
		mongodb.NewCustomerRepository(db),
		mongodb.NewFollowerRepository(db),
	}
	for _, repo := range indexed {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
