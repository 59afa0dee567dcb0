package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"storefront/internal/activity"
	"storefront/internal/apiclient"
	"storefront/internal/auth"
	"storefront/internal/backend"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/consul"
	"storefront/internal/gateway"
	"storefront/internal/kafka"
	"storefront/internal/logger"
	"storefront/internal/session"
	"storefront/internal/storage"
	"storefront/internal/storefront"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	// Initialize structured logger
	log := logger.New("storefront")
	logger.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting storefront",
		"port", cfg.Port,
		"primary_api", cfg.PrimaryAPIURL,
		"fallback_api", cfg.FallbackAPIURL,
		"session_store", cfg.SessionStore,
	)

	// Session store
	var store session.Store
	switch cfg.SessionStore {
	case config.SessionStoreMemory:
		store = session.NewMemoryStore()
		slog.Warn("Using in-memory session store; sessions are lost on restart")
	default:
		store = session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		slog.Info("Using Redis session store", "redis_addr", cfg.RedisAddr)
	}
	sessions := session.NewManager(store, cfg.SessionMaxAge, log)

	// Consul: primary API discovery and self registration
	var consulClient *consul.Client
	if cfg.ConsulAddr != "" {
		consulClient, err = consul.NewClientWithToken(cfg.ConsulAddr, cfg.ConsulToken)
		if err != nil {
			slog.Error("Failed to create Consul client", "error", err)
			os.Exit(1)
		}
		slog.Info("Connected to Consul", "consul_addr", cfg.ConsulAddr)
	}

	primary, err := primaryLocator(cfg, consulClient)
	if err != nil {
		slog.Error("Invalid primary API", "error", err)
		os.Exit(1)
	}

	// Backend selection and shop API client
	selector := backend.NewSelector(backend.Config{
		Primary:      primary,
		FallbackURL:  cfg.FallbackAPIURL,
		ProbeTimeout: cfg.ProbeTimeout,
	}, log)
	client := apiclient.New(selector, &http.Client{Timeout: cfg.RequestTimeout}, log)

	// Product images
	var presigner storage.Presigner
	s3Cfg, ok, err := storage.LoadConfig()
	if err != nil {
		slog.Error("Invalid object storage configuration", "error", err)
		os.Exit(1)
	}
	if ok {
		presigner, err = storage.New(context.Background(), s3Cfg)
		if err != nil {
			slog.Error("Failed to create object storage client", "error", err)
			os.Exit(1)
		}
		slog.Info("Presigning product images", "bucket", s3Cfg.Bucket)
	}
	images := storage.NewImageResolver(presigner, cfg.ImageURLExpiry, log)

	// Activity events
	var publisher activity.Publisher = activity.Nop{}
	if cfg.KafkaBrokers != "" {
		kafkaCfg, err := kafka.LoadConfig()
		if err != nil {
			slog.Error("Invalid Kafka configuration", "error", err)
			os.Exit(1)
		}
		producer, err := kafka.NewProducer(kafkaCfg, log)
		if err != nil {
			slog.Error("Failed to create Kafka producer", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		publisher = producer
	}

	dispatcher := storefront.NewDispatcher(storefront.Config{
		Sessions: sessions,
		Cart:     cart.NewSynchronizer(client, images, publisher, log),
		Auth:     auth.NewService(client, sessions, publisher, log),
		Catalog:  catalog.New(images, 0),
		Search:   client,
	}, log)

	var storageHealth gateway.HealthChecker
	if presigner != nil {
		storageHealth = presigner
	}
	router := gateway.SetupRouter(
		gateway.NewHandler(dispatcher, selector, storageHealth),
		sessions,
		gateway.RouterConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			SessionMaxAge:  int(cfg.SessionMaxAge.Seconds()),
			SecureCookies:  cfg.SecureCookies,
		},
		log,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Storefront listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	var registration *consul.ServiceConfig
	if cfg.RegisterSelf {
		port, err := strconv.Atoi(cfg.Port)
		if err != nil {
			slog.Error("Invalid STOREFRONT_PORT", "port", cfg.Port, "error", err)
			os.Exit(1)
		}
		registration = consul.StorefrontService(cfg.ServiceHost, port)
		if err := consulClient.Register(registration); err != nil {
			slog.Error("Failed to register with Consul", "error", err)
			os.Exit(1)
		}
		slog.Info("Registered with Consul", "service_id", registration.ID)
	}

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down storefront")

	if registration != nil {
		if err := consulClient.Deregister(registration.ID); err != nil {
			slog.Warn("Failed to deregister from Consul", "error", err)
		}
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Storefront stopped", "backend", selector.Choice().String())
}

// primaryLocator finds the primary API in Consul when a service name is
// configured and uses the static URL otherwise.
func primaryLocator(cfg *config.Storefront, consulClient *consul.Client) (backend.Locator, error) {
	if cfg.PrimaryService == "" {
		return backend.StaticLocator{BaseURL: cfg.PrimaryAPIURL, HealthURL: cfg.PrimaryHealthURL}, nil
	}

	u, err := url.Parse(cfg.PrimaryAPIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid PRIMARY_API_URL %q: %w", cfg.PrimaryAPIURL, err)
	}
	slog.Info("Discovering primary API in Consul", "service", cfg.PrimaryService)
	return consul.NewAPILocator(consulClient, cfg.PrimaryService, u.Scheme, u.Path), nil
}
