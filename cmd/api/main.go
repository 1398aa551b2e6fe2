package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bandiwala/internal/auth"
	"bandiwala/internal/cart"
	"bandiwala/internal/config"
	"bandiwala/internal/db"
	"bandiwala/internal/events"
	"bandiwala/internal/logger"
	"bandiwala/internal/menu"
	"bandiwala/internal/metrics"
	"bandiwala/internal/order"
	"bandiwala/internal/pricing"
	"bandiwala/internal/router"
	"bandiwala/internal/storage"
)

func main() {
	log := logger.GetLogger()
	defer logger.Sync()

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("load config", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("postgres init failed", "error", err)
	}
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	var images menu.Storage
	if cfg.R2.Enabled() {
		r2Client, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			log.Fatalw("R2 init failed", "error", err)
		}
		images = r2Client
	} else {
		log.Warn("R2 not configured, menu image upload disabled")
	}

	// ───────────────────────── EVENTS ─────────────────────────
	var sinks events.MultiPublisher
	if cfg.RabbitMQURL != "" {
		rabbit, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalw("RabbitMQ init failed", "error", err)
		}
		defer rabbit.Close()
		sinks = append(sinks, rabbit)
	}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPub.Close()
		sinks = append(sinks, kafkaPub)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(sinks) > 0 {
		publisher = sinks
	}

	// ───────────────────────── SERVICES ─────────────────────────
	calculator, err := pricing.NewCalculator(cfg.Fees)
	if err != nil {
		log.Fatalw("invalid fee configuration", "error", err)
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret)
	if err != nil {
		log.Fatalw("invalid jwt configuration", "error", err)
	}

	authService := auth.NewService(auth.NewPostgresUserRepository(pgDB), tokens)
	menuService := menu.NewService(menu.NewPostgresRepository(pgDB), images)
	cartService := cart.NewService(cart.NewPostgresRepository(pgDB), menuService, calculator)
	orderService := order.NewService(order.NewPostgresRepository(pgDB), cartService, publisher)

	// ───────────────────────── HTTP ─────────────────────────
	r := router.NewRouter(router.Handlers{
		Auth:  auth.NewHandler(authService),
		Menu:  menu.NewHandler(menuService),
		Cart:  cart.NewHandler(cartService),
		Order: order.NewHandler(orderService),

		Tokens:  tokens,
		Metrics: metrics.NewServerMetrics("api"),
	}, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("API running", "addr", srv.Addr, "fees", cfg.Fees)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
}
