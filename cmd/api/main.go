package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/accurateastro/astro-backend/internal/auth"
	"github.com/accurateastro/astro-backend/internal/booking"
	"github.com/accurateastro/astro-backend/internal/config"
	"github.com/accurateastro/astro-backend/internal/content"
	"github.com/accurateastro/astro-backend/internal/httpx"
	"github.com/accurateastro/astro-backend/internal/kafka"
	"github.com/accurateastro/astro-backend/internal/logx"
	"github.com/accurateastro/astro-backend/internal/objstore"
	"github.com/accurateastro/astro-backend/internal/payment"
	"github.com/accurateastro/astro-backend/internal/postgres"
	"github.com/accurateastro/astro-backend/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logx.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, cfg.PostgresDSN, int32(cfg.PGMaxConns))
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := postgres.NewMigrator(pool, cfg.MigrationsDir)
	if err != nil {
		log.Fatal("migrator init", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		log.Fatal("migrations", zap.Error(err))
	}
	_ = migrator.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	store, err := objstore.New(objstore.Options{
		Endpoint:   cfg.S3Endpoint,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		Bucket:     cfg.S3Bucket,
		UseSSL:     cfg.S3UseSSL,
		PublicBase: cfg.S3PublicBase,
	})
	if err != nil {
		log.Fatal("object store", zap.Error(err))
	}
	if err := store.EnsureBucket(ctx); err != nil {
		log.Warn("object store bucket check failed, uploads may not work", zap.Error(err))
	}

	producerCtx, stopProducer := context.WithCancel(context.Background())
	producer := kafka.NewProducer(cfg.KafkaBrokers, booking.TopicBookingEvents, 1024, log)
	producer.Start(producerCtx)

	gateway := payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.GatewayTimeout)

	bookingSvc := booking.NewService(&booking.PGRepo{DB: pool}, gateway, booking.ServiceConfig{
		Slots:             redisx.NewSlotLock(rdb),
		Events:            producer,
		Logger:            log,
		StrictTransitions: cfg.StrictTransitions,
		ServiceName:       cfg.ServiceName,
	})
	authSvc := auth.NewService(&auth.PGRepo{DB: pool}, cfg.JWTSecret, cfg.JWTTTL, log)
	contentSvc := content.NewService(&content.PGRepo{DB: pool}, log)

	router := httpx.NewRouter(log, cfg.CORSOrigins)
	mw := &httpx.AuthMiddleware{Svc: authSvc}
	(&httpx.BookingHandler{Svc: bookingSvc, Log: log}).Register(router, mw)
	(&httpx.AdminHandler{Auth: authSvc, Bookings: bookingSvc, Content: contentSvc, Log: log}).Register(router, mw)
	(&httpx.ContentHandler{Svc: contentSvc, Log: log}).Register(router, mw)
	(&httpx.UploadHandler{Store: store, Log: log}).Register(router, mw)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("http server listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}

	// Stop the producer only after the server has drained so no handler
	// publishes into a closed inbox.
	stopProducer()
	producer.WaitClosed()

	log.Info("bye")
}
