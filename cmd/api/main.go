package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"sams-storefront/internal/config"
	"sams-storefront/internal/db"
	"sams-storefront/internal/domain"
	"sams-storefront/internal/httpserver"
	"sams-storefront/internal/logging"
	"sams-storefront/internal/promo"
	menurepo "sams-storefront/internal/repository/menu"
	prefrepo "sams-storefront/internal/repository/preference"
	resrepo "sams-storefront/internal/repository/reservation"
	"sams-storefront/internal/seed"
	cartsvc "sams-storefront/internal/service/cart"
	menusvc "sams-storefront/internal/service/menu"
	prefsvc "sams-storefront/internal/service/preference"
	reservationsvc "sams-storefront/internal/service/reservation"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New(cfg.LogLevel)
	log := logger.WithField("component", "api")

	rules, err := promo.Load(cfg.PromoRulesFile)
	if err != nil {
		log.WithError(err).Fatal("load promo rules")
	}
	defaultLang, err := domain.ParseLang(cfg.DefaultLang)
	if err != nil {
		log.WithError(err).Fatalf("DEFAULT_LANG %q", cfg.DefaultLang)
	}

	ctx := context.Background()
	var (
		dbpool    *pgxpool.Pool
		menuRepo  menurepo.Repository
		prefsRepo prefrepo.Repository
		resRepo   resrepo.Repository
	)
	switch cfg.Storage {
	case config.StoragePostgres:
		dbpool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			log.WithError(err).Fatal("connect to db")
		}
		defer dbpool.Close()
		menuRepo = menurepo.NewPostgres(dbpool, log)
		prefsRepo = prefrepo.NewPostgres(dbpool, log)
		resRepo = resrepo.NewPostgres(dbpool, log)
	case config.StorageMemory:
		menuRepo = menurepo.NewMemory(seed.DemoMenu()...)
		prefsRepo = prefrepo.NewMemory()
		resRepo = resrepo.NewMemory()
	default:
		log.Fatalf("unknown STORAGE %q", cfg.Storage)
	}

	cartService := cartsvc.New(menuRepo, cartsvc.Options{
		Rules:       rules,
		DefaultLang: defaultLang,
		Seed:        seed.DemoCart,
		Preferences: prefsRepo,
		IdleTTL:     cfg.SessionIdleTTL,
		Logger:      log,
	})
	prefService := prefsvc.New(prefsRepo, cartService, defaultLang, log)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:        cartService,
		MenuSvc:        menusvc.New(menuRepo),
		PreferenceSvc:  prefService,
		ReservationSvc: reservationsvc.New(resRepo, log),
	}, httpserver.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		SessionCookie:  cfg.SessionCookie,
	})
	if err != nil {
		log.WithError(err).Fatal("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).WithField("storage", cfg.Storage).Info("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		log.WithField("signal", sig.String()).Info("shutting down")
	case err := <-serverErr:
		log.WithError(err).Error("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	} else {
		log.Info("server stopped")
	}
}
