package main

import (
	"context"
	"flag"
	"os"
	"time"

	"sams-storefront/internal/config"
	"sams-storefront/internal/db"
	"sams-storefront/internal/importer"
	"sams-storefront/internal/logging"
	menurepo "sams-storefront/internal/repository/menu"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to menu CSV (id,name.en,name.fr,price,image)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	log := logging.New(cfg.LogLevel).WithField("component", "importer")
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.WithError(err).Fatal("connect db")
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Fatal("open file")
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, menurepo.NewPostgres(pool, log), log)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.WithError(err).Fatal("import failed")
	}

	log.WithField("count", count).WithField("took", time.Since(start).Truncate(time.Millisecond).String()).Info("menu imported")
}
