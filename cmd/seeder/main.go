package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"stayhub/internal/adapters/observability"
	"stayhub/internal/domain"
	"stayhub/internal/shared"
	mysqlrepo "stayhub/internal/storage/mysql"
)

// Seeds the static hotel catalog and the demo account into MySQL. Safe to
// re-run: hotels upsert, the demo user is created only when missing.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("hotels", len(shared.Catalog)).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	catalog := mysqlrepo.NewCatalogRepo(db)
	users := mysqlrepo.NewUserRepo(db)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, h := range shared.Catalog {
		h := h

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(hotel domain.Hotel) {
			defer wg.Done()
			defer sem.Release(1)

			if err := catalog.UpsertHotel(ctx, hotel); err != nil {
				log.Warn().Int64("id", hotel.ID).Err(err).Msg("seed hotel failed")
				return
			}
			log.Info().Int64("id", hotel.ID).Str("name", hotel.Name).Msg("seed hotel ok")
		}(h)
	}
	wg.Wait()

	created, err := shared.SeedDemoUser(ctx, users, cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("seed demo user failed")
	}
	if created {
		log.Info().Str("email", shared.DemoEmail).Msg("demo user seeded")
	} else {
		log.Info().Str("email", shared.DemoEmail).Msg("demo user already seeded")
	}

	log.Info().Msg("seeding completed")
}
