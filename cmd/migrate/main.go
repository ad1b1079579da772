package main

import (
	"context"

	"sams-storefront/internal/config"
	"sams-storefront/internal/db"
	"sams-storefront/internal/logging"
	"sams-storefront/internal/migrate"
)

func main() {
	cfg := config.FromEnv()
	log := logging.New(cfg.LogLevel).WithField("component", "migrate")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.WithError(err).Fatal("connect db")
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		log.WithError(err).Fatal("apply migrations")
	}

	log.Info("migrations applied")
}
