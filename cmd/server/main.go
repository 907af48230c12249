package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/secondecom/eshop/internal/config"
	"github.com/secondecom/eshop/internal/db"
	"github.com/secondecom/eshop/internal/events"
	"github.com/secondecom/eshop/internal/httpserver"
	"github.com/secondecom/eshop/internal/logging"
	"github.com/secondecom/eshop/internal/repo"
	"github.com/secondecom/eshop/internal/service"
	"github.com/secondecom/eshop/internal/storage"
)

func main() {
	cfg := config.Load()
	cfg.MustValid()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.KafkaBrokers, logger)
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
		pub = kp
	} else {
		logger.Info("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	Repo := repo.New(gdb)
	images := storage.NewImageStore(cfg.UploadDir)

	authService := &service.AuthService{Repo: Repo, Events: pub, JWTSecret: cfg.JWTSecret, AccessTTL: cfg.AccessTokenTTL}
	categoryService := &service.CategoryService{Repo: Repo}

	if cfg.SeedUsers {
		seedCtx := logging.IntoContext(context.Background(), logger)
		if err := authService.Seed(seedCtx, service.DefaultSeedUsers(cfg.AdminPassword, cfg.UserPassword)); err != nil {
			log.Fatalf("seed users error: %v", err)
		}
	}

	e := httpserver.New(logger, cfg.CORSOrigins)
	httpserver.Register(e, &httpserver.Deps{
		Health:   &httpserver.HealthHTTP{DB: gdb},
		Auth:     &httpserver.AuthHTTP{Svc: authService},
		Catalog:  &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: Repo}, Categories: categoryService},
		Cart:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: Repo, Events: pub}},
		Admin:    &httpserver.AdminHTTP{Svc: &service.AdminService{Repo: Repo, Events: pub, Images: images}, Categories: categoryService},
		Orders:   &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: Repo, Events: pub}},
		Profile:  &httpserver.ProfileHTTP{Svc: &service.ProfileService{Repo: Repo}},
		Wishlist: &httpserver.WishlistHTTP{Svc: &service.WishlistService{Repo: Repo}},

		JWTSecret: cfg.JWTSecret,
		ImageDir:  cfg.UploadDir,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("server_starting", "addr", srv.Addr, "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := pub.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close error", "error", err)
	}

	logger.Info("shutdown complete")
}
