package main

import (
	"context"

	"sams-storefront/internal/config"
	"sams-storefront/internal/db"
	"sams-storefront/internal/logging"
	menurepo "sams-storefront/internal/repository/menu"
	"sams-storefront/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	log := logging.New(cfg.LogLevel).WithField("component", "seed")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.WithError(err).Fatal("connect db")
	}
	defer pool.Close()

	if err := seed.Apply(ctx, menurepo.NewPostgres(pool, log)); err != nil {
		log.WithError(err).Fatal("seed apply")
	}

	log.WithField("items", len(seed.DemoMenu())).Info("seed applied")
}
