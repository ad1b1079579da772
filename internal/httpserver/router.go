package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"sams-storefront/internal/domain"
	cartsvc "sams-storefront/internal/service/cart"
	menusvc "sams-storefront/internal/service/menu"
	reservationsvc "sams-storefront/internal/service/reservation"
	"sams-storefront/internal/surface"
)

type CartService interface {
	Get(ctx context.Context, sessionID string) (*cartsvc.View, error)
	Update(ctx context.Context, sessionID string, in cartsvc.UpdateInput) (*cartsvc.View, error)
	AddItem(ctx context.Context, sessionID string, itemID int) (*cartsvc.View, error)
	Increment(ctx context.Context, sessionID string, itemID int) (*cartsvc.View, error)
	Decrement(ctx context.Context, sessionID string, itemID int) (*cartsvc.View, error)
	Remove(ctx context.Context, sessionID string, itemID int) (*cartsvc.View, error)
	ApplyPromoCode(ctx context.Context, sessionID, code string) (*cartsvc.View, error)
	Surface(ctx context.Context, sessionID, name string) (surface.Snapshot, error)
	OpenSurface(ctx context.Context, sessionID, name string) (surface.Snapshot, error)
	CloseSurface(ctx context.Context, sessionID, name string) (surface.Snapshot, error)
}

type MenuService interface {
	List(ctx context.Context, lang domain.Lang) ([]menusvc.Entry, error)
	Get(ctx context.Context, id int, lang domain.Lang) (*menusvc.Entry, error)
}

type PreferenceService interface {
	Language(ctx context.Context, sessionID string) (domain.Lang, error)
	SetLanguage(ctx context.Context, sessionID, raw string) (domain.Lang, domain.Notification, error)
}

type ReservationService interface {
	Submit(ctx context.Context, sessionID string, in reservationsvc.Input, lang domain.Lang) (*reservationsvc.Result, error)
	List(ctx context.Context, sessionID string) ([]domain.Reservation, error)
}

// Deps are the services the routes call into.
type Deps struct {
	CartSvc        CartService
	MenuSvc        MenuService
	PreferenceSvc  PreferenceService
	ReservationSvc ReservationService
}

// Options tune the HTTP surface.
type Options struct {
	AllowedOrigins []string
	SessionCookie  string
}

// buildRouter wires routes for the API.
func buildRouter(logger *logrus.Logger, db *pgxpool.Pool, deps Deps, opts Options) (*gin.Engine, error) {
	if deps.CartSvc == nil || deps.MenuSvc == nil || deps.PreferenceSvc == nil || deps.ReservationSvc == nil {
		return nil, errors.New("cart, menu, preference and reservation services are required")
	}
	if opts.SessionCookie == "" {
		opts.SessionCookie = defaultSessionCookie
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", sessionHeader},
			ExposeHeaders:    []string{sessionHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}
	api := router.Group("/", sessionMiddleware(opts.SessionCookie))

	api.GET("/menu", h.listMenu)
	api.GET("/menu/:id", h.getMenuItem)

	api.GET("/cart", h.getCart)
	api.POST("/cart", h.updateCart)
	api.POST("/cart/items", h.addItem)
	api.POST("/cart/items/:id/increment", h.incrementItem)
	api.POST("/cart/items/:id/decrement", h.decrementItem)
	api.DELETE("/cart/items/:id", h.removeItem)
	api.POST("/cart/promo", h.applyPromo)

	api.GET("/cart/surfaces/:surface", h.getSurface)
	api.POST("/cart/surfaces/:surface/open", h.openSurface)
	api.POST("/cart/surfaces/:surface/close", h.closeSurface)

	api.GET("/preferences/language", h.getLanguage)
	api.PUT("/preferences/language", h.setLanguage)

	api.GET("/reservations", h.listReservations)
	api.POST("/reservations", h.createReservation)

	return router, nil
}
