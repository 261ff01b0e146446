package kvstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Notifier is what the listener relays remote writes into
type Notifier interface {
	Notify(collection string)
}

type ListenerConfig struct {
	DatabaseURL   string        // Postgres DSN for LISTEN/NOTIFY
	NotifyChannel string        // Channel name to LISTEN on
	KeyPrefix     string        // Only keys with this prefix are relayed
	PingInterval  time.Duration // Keepalive for the LISTEN connection
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		NotifyChannel: DefaultNotifyChannel,
		PingInterval:  90 * time.Second,
	}
}

// Listener relays pg_notify events issued by Postgres.Set in other processes
// to the local store, so subscribers learn about writes they did not make.
type Listener struct {
	listener *pq.Listener
	target   Notifier
	cfg      ListenerConfig
}

func NewListener(target Notifier, cfg ListenerConfig) (*Listener, error) {
	l := pq.NewListener(
		cfg.DatabaseURL,
		10*time.Second,
		time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Error().Err(err).Msg("listener event")
			}
		},
	)
	if err := l.Listen(cfg.NotifyChannel); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}

	log.Info().
		Str("channel", cfg.NotifyChannel).
		Msg("listening for store notifications")

	return &Listener{listener: l, target: target, cfg: cfg}, nil
}

// Start blocks until ctx is done
func (l *Listener) Start(ctx context.Context) error {
	pingTicker := time.NewTicker(l.cfg.PingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("store listener shutting down")
			return l.Stop()
		case note := <-l.listener.Notify:
			if note == nil {
				// connection was re-established; writes during the gap are not replayed
				continue
			}
			if collection, ok := l.collectionFor(note.Extra); ok {
				l.target.Notify(collection)
			}
		case <-pingTicker.C:
			if err := l.listener.Ping(); err != nil {
				log.Error().Err(err).Msg("failed to ping listener")
			}
		}
	}
}

func (l *Listener) Stop() error {
	return l.listener.Close()
}

func (l *Listener) collectionFor(key string) (string, bool) {
	if !strings.HasPrefix(key, l.cfg.KeyPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(key, l.cfg.KeyPrefix)
	return name, name != ""
}
