package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgdem/desporto/go/internal/dbconfig"
	"github.com/pgdem/desporto/go/internal/seed"
	"github.com/pgdem/desporto/go/internal/store"
)

// Writes the default catalog, schools and users into kv_store. Existing keys
// are left alone unless -reset is given, which first deletes every key under
// the prefix.
func main() {
	prefix := flag.String("prefix", store.DefaultPrefix, "key prefix of the store")
	reset := flag.Bool("reset", false, "delete every key under the prefix before seeding")
	flag.Parse()

	ctx := context.Background()

	// 1) Load the bundled defaults
	defaults, err := seed.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load defaults: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *reset {
		tag, err := pool.Exec(ctx, `DELETE FROM kv_store WHERE key LIKE $1 || '%'`, *prefix)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reset store: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed %d keys under %q\n", tag.RowsAffected(), *prefix)
	}

	collections := map[string]any{
		store.Municipalities: defaults.Municipalities,
		store.Modalities:     defaults.Modalities,
		store.AgeGroups:      defaults.AgeGroups,
		store.Schools:        defaults.Schools,
		store.Users:          defaults.Users,
	}

	// 3) Insert and count
	var inserted, skipped, errs int
	for name, records := range collections {
		blob, err := json.Marshal(records)
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode %s: %v\n", name, err)
			errs++
			continue
		}
		tag, err := pool.Exec(ctx, `
            INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
            ON CONFLICT (key) DO NOTHING
        `, *prefix+name, blob)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting %s: %v\n", name, err)
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}

	// 4) Print summary
	fmt.Printf(
		"Store seed complete: %d collections, %d inserted, %d skipped, %d errors\n",
		len(collections), inserted, skipped, errs,
	)
	if errs > 0 {
		os.Exit(1)
	}
}
