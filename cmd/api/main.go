package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "stayhub/internal/adapters/http_server"
	"stayhub/internal/adapters/observability"
	"stayhub/internal/adapters/payments"
	redisad "stayhub/internal/adapters/redis"
	"stayhub/internal/app"
	"stayhub/internal/shared"
	mysqlrepo "stayhub/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	catalogRepo := mysqlrepo.NewCatalogRepo(db)
	userRepo := mysqlrepo.NewUserRepo(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sessions := redisad.NewSessionStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	gateway := payments.New(cfg.PaymentDelay)

	catalog := app.NewCatalogService(catalogRepo, cache, cfg.CacheTTL)
	accounts := app.NewAccountService(userRepo, sessions, cfg.SessionTTL, cfg.BcryptCost)
	bookings := app.NewBookingService(userRepo, catalog, gateway)

	accounts.Subscribe(func(loggedIn bool) {
		log.Debug().Bool("logged_in", loggedIn).Msg("auth state changed")
	})

	// http
	srv := server.New(cfg.RateRPS, cfg.RateBurst)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Catalog: catalog, Accounts: accounts, Bookings: bookings})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
