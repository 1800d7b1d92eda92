package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"tafsiri.site/backend/internal/cli"
	"tafsiri.site/backend/internal/config"
	"tafsiri.site/backend/internal/db"
	"tafsiri.site/backend/internal/httpapi"
	"tafsiri.site/backend/internal/logging"
	"tafsiri.site/backend/internal/translation"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	host := fs.String("host", "0.0.0.0", "Host interface to bind")
	port := fs.Int("port", 8000, "HTTP port")
	readTimeout := fs.Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	shutdownTimeout := fs.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *port <= 0 || *port > 65535 {
		fmt.Fprintln(os.Stderr, "--port must be between 1 and 65535")
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	pool, err := db.NewPool(dbCtx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("serve failed to connect to database")
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		return 1
	}
	defer pool.Close()

	if err := ensureDefaultAdmin(dbCtx, pool, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("default admin seeding failed")
		fmt.Fprintf(os.Stderr, "Failed to seed default admin: %v\n", err)
		return 1
	}

	registry := buildTranslationRegistry(cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		cancel()
	}()

	srv := httpapi.NewServer(pool, registry, logger, httpapi.Options{
		Host:               *host,
		Port:               *port,
		ReadTimeout:        *readTimeout,
		WriteTimeout:       *writeTimeout,
		ShutdownTimeout:    *shutdownTimeout,
		AllowedOrigins:     cfg.CORSAllowedOriginsList(),
		TranslationTimeout: cfg.TranslationTimeout,
		EnglishDetection:   cfg.EnglishDetection,
	})

	if err := srv.Start(ctx); err != nil {
		logger.Error().Err(err).Str("host", *host).Int("port", *port).Msg("server failed")
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return 1
	}

	return 0
}

func buildTranslationRegistry(cfg *config.Config, logger zerolog.Logger) *translation.Registry {
	registry := translation.NewRegistry(cfg.TranslationProvider)

	marian := translation.NewMarianProvider(cfg.TranslationEndpoint, cfg.TranslationModel, cfg.HFToken)
	if err := registry.Register(marian); err != nil {
		logger.Error().Err(err).Msg("register marian provider failed")
	}

	google := translation.NewGoogleProvider(cfg.GoogleCredentials)
	if err := registry.Register(google); err != nil {
		logger.Error().Err(err).Msg("register google provider failed")
	}

	logger.Info().
		Str("default_provider", registry.DefaultProvider()).
		Strs("providers", registry.ProviderNames()).
		Msg("translation providers registered")

	return registry
}
