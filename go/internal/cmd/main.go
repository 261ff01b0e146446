package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pgdem/desporto/go/internal/events"
	"github.com/pgdem/desporto/go/internal/gateway"
	"github.com/pgdem/desporto/go/internal/seed"
	"github.com/pgdem/desporto/go/internal/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := setupBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to set up store backend")
	}
	defer backend.Close()

	broker := store.NewBroker()
	s := store.NewStore(backend.Medium, broker, store.WithPrefix(cfg.Store.KeyPrefix))
	if err := backend.Relay(ctx, s); err != nil {
		log.Fatal().Err(err).Msg("failed to start store relay")
	}

	cm := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	defer cm.Attach(broker)()
	go cm.Start(ctx)

	if cfg.NATS.PublishChanges {
		detach, closer, err := startForwarder(ctx, cfg, broker)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start change forwarder")
		}
		defer closer()
		defer detach()
	}

	services := setupServices(s, seed.MustLoad(), cfg.Environment)
	server := setupServer(cfg, services, gateway.NewWebSocketHandler(cm))

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("driver", cfg.Store.Driver).
			Str("environment", cfg.Environment).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

func setupLogging(cfg *Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func startForwarder(ctx context.Context, cfg *Config, broker *store.Broker) (func(), func(), error) {
	jcfg := events.DefaultJetStreamConfig()
	jcfg.URL = cfg.NATS.URL
	jcfg.StreamName = cfg.NATS.Stream

	pub, err := events.NewNATSPublisher(ctx, jcfg)
	if err != nil {
		return nil, nil, err
	}

	fwd := events.NewForwarder(pub, jcfg.SubjectPrefix, 256)
	detach := fwd.Attach(broker)
	go fwd.Run(ctx)

	closer := func() {
		if err := pub.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close change publisher")
		}
	}
	return detach, closer, nil
}
