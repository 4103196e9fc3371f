package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/avdeevm/social-network-api/internal/config"
	"github.com/avdeevm/social-network-api/internal/db"
	"github.com/avdeevm/social-network-api/internal/es"
	"github.com/avdeevm/social-network-api/internal/events"
	"github.com/avdeevm/social-network-api/internal/httpserver"
	"github.com/avdeevm/social-network-api/internal/logging"
	mw "github.com/avdeevm/social-network-api/internal/middleware"
	"github.com/avdeevm/social-network-api/internal/repo"
	"github.com/avdeevm/social-network-api/internal/search"
	"github.com/avdeevm/social-network-api/internal/service"
	"github.com/avdeevm/social-network-api/internal/tokens"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	gdb, err := db.Open(context.Background(), cfg.DSN())
	if err != nil {
		log.Fatalf("database error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	if producer == nil {
		logger.Warn("kafka disabled, KAFKA_BROKERS not set")
	}

	var index *search.Index
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch error: %v", err)
		}
		index = search.NewIndex(esClient)
	} else {
		logger.Warn("elasticsearch disabled, user search falls back to the database")
	}

	r := repo.New(gdb)
	codec := tokens.NewCodec(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	authSvc := &service.AuthService{Repo: r, Codec: codec, Producer: producer, Index: index}
	userSvc := &service.UserService{Repo: r, Producer: producer, Index: index}
	roleSvc := &service.RoleService{Repo: r}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), echomw.CORS())
	e.Use(mw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: authSvc},
		UserHandler: &httpserver.UserHTTP{
			Users:           userSvc,
			Auth:            authSvc,
			DefaultPageSize: cfg.DefaultPageSize,
			MaxPageSize:     cfg.MaxPageSize,
		},
		RoleHandler: &httpserver.RoleHTTP{Svc: roleSvc},
		AuthMW:      mw.NewAuth(codec, r),
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "addr", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
