package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/aleph-zero/flutterstack/api"
	"github.com/aleph-zero/flutterstack/service/command"
	"github.com/aleph-zero/flutterstack/service/identity"
	"github.com/aleph-zero/flutterstack/service/stacks"
	"github.com/aleph-zero/flutterstack/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/riandyrn/otelchi"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	ServiceName    = "flutterstack"
	ServiceVersion = "0.0.1"
)

var collectorURL = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")

/* *** Server Config *** */

type Config struct {
	Address      string
	Port         uint16
	NodeName     string
	StacksConfig *stacks.Config
}

type Option func(*Config)

func NewConfig(options ...Option) *Config {
	cfg := &Config{}
	for _, option := range options {
		option(cfg)
	}
	return cfg
}

func WithAddress(address string) Option {
	return func(c *Config) {
		c.Address = address
	}
}

func WithPort(port uint16) Option {
	return func(c *Config) {
		c.Port = port
	}
}

func WithNodeName(nodeName string) Option {
	return func(c *Config) {
		c.NodeName = nodeName
	}
}

func WithStacksConfig(stacksConfig *stacks.Config) Option {
	return func(c *Config) {
		c.StacksConfig = stacksConfig
	}
}

func NewLogger() *httplog.Logger {
	return httplog.NewLogger(ServiceName, httplog.Options{
		LogLevel:         slog.LevelInfo,
		MessageFieldName: "msg",
		JSON:             true,
		Concise:          true,
		RequestHeaders:   false,
		ResponseHeaders:  false,
	})
}

// NewRouter wires the services into the api routes.
func NewRouter(config *Config, logger *httplog.Logger) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Heartbeat("/heartbeat"))
	router.Use(otelchi.Middleware(ServiceName, otelchi.WithChiRoutes(router)))
	router.Use(middleware.RequestID)
	router.Use(render.SetContentType(render.ContentTypeJSON))
	router.Use(httplog.RequestLogger(logger))

	stackSvc := stacks.NewService(config.StacksConfig)

	{
		handler := api.NewIdentityHandler(identity.NewService(config.NodeName, ServiceVersion, config.Address, config.Port))
		router.Get("/identity", handler.GetIdentity)
	}
	{
		handler := api.NewCommandHandler(command.NewService(stackSvc))
		router.Get("/exec", handler.Execute)
	}
	{
		handler := api.NewStackHandler(stackSvc)
		router.Mount("/stacks", handler.Routes())
	}
	return router
}

func Bootstrap(config *Config) {
	ctx, shutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdown()

	logger := NewLogger()
	logger.InfoContext(ctx, "Bootstrapping server...", "config", config)

	/* *** Initialize Opentelemetry *** */
	shutdownTelemetry, err := telemetry.New(ServiceName, ServiceVersion, collectorURL)
	if err != nil {
		logger.ErrorContext(ctx, "Error initializing telemetry", "err", err)
	} else {
		defer shutdownTelemetry()
	}

	srv := http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Address, config.Port),
		Handler: NewRouter(config, logger),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "Error starting server", "err", err)
		}
		logger.InfoContext(ctx, "Server stopped accepting connections")
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-sig

	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorContext(ctx, "Error shutting down server", "err", err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Server shutdown complete")
}
