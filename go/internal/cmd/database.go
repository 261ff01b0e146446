package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pgdem/desporto/go/internal/dbconfig"
	"github.com/pgdem/desporto/go/internal/kvstore"
	"github.com/pgdem/desporto/go/internal/store"
	"github.com/rs/zerolog/log"
)

func setupDatabase(ctx context.Context, dbCfg dbconfig.Config) (*sql.DB, error) {
	database, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	database.SetMaxOpenConns(dbCfg.MaxOpenConns)
	database.SetConnMaxIdleTime(dbCfg.ConnMaxIdleTime)

	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().
		Str("user", dbCfg.User).
		Str("host", dbCfg.Host).
		Int("port", dbCfg.Port).
		Str("database", dbCfg.Database).
		Msg("connected to database")
	return database, nil
}

// Backend is the medium chosen by configuration plus whatever must be shut
// down with it.
type Backend struct {
	Medium  store.Medium
	relay   *kvstore.ListenerConfig
	closers []func() error
}

// Relay starts forwarding writes made by other processes to s. Only the
// Postgres medium has a relay; for the others it returns immediately.
func (b *Backend) Relay(ctx context.Context, s *store.Store) error {
	if b.relay == nil {
		return nil
	}
	listener, err := kvstore.NewListener(s, *b.relay)
	if err != nil {
		return err
	}
	go func() {
		if err := listener.Start(ctx); err != nil {
			log.Error().Err(err).Msg("store listener stopped")
		}
	}()
	return nil
}

func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			log.Error().Err(err).Msg("failed to close backend")
		}
	}
}

func setupBackend(ctx context.Context, cfg *Config) (*Backend, error) {
	switch cfg.Store.Driver {
	case DriverPostgres:
		dbCfg := dbconfig.NewConfigFromEnv()
		database, err := setupDatabase(ctx, dbCfg)
		if err != nil {
			return nil, err
		}
		medium, err := kvstore.NewPostgres(ctx, database, cfg.Store.NotifyChannel)
		if err != nil {
			database.Close()
			return nil, err
		}

		lcfg := kvstore.DefaultListenerConfig()
		lcfg.DatabaseURL = dbCfg.DSN()
		lcfg.NotifyChannel = cfg.Store.NotifyChannel
		lcfg.KeyPrefix = cfg.Store.KeyPrefix
		return &Backend{Medium: medium, relay: &lcfg, closers: []func() error{database.Close}}, nil

	case DriverNATS:
		ncfg := kvstore.DefaultNATSConfig()
		ncfg.URL = cfg.NATS.URL
		ncfg.Bucket = cfg.NATS.Bucket
		medium, err := kvstore.NewNATS(ctx, ncfg)
		if err != nil {
			return nil, err
		}
		return &Backend{Medium: medium, closers: []func() error{medium.Close}}, nil

	default:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return &Backend{Medium: kvstore.NewMemory()}, nil
	}
}
