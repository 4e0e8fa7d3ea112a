package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/config"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/handler"
	mw "github.com/davislcruz/taco-truck-web-app-sub000/internal/middleware"
)

// Stores bundles the storage interfaces the routes need. Both
// *store.Postgres and *store.Memory satisfy every field.
type Stores struct {
	Categories handler.CategoryStore
	Items      handler.MenuItemStore
	Orders     handler.OrderQueryStore
	Settings   handler.SettingsStore
	Owners     handler.OwnerStore
}

// New creates a Chi router with all application routes wired up.
// Customer reads and order placement are public; menu management, the
// order dashboard and settings writes require an owner token.
func New(cfg *config.Config, stores Stores, placer handler.OrderPlacer) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	authHandler := handler.NewAuthHandler(stores.Owners, cfg.JWTSecret)
	r.Route("/auth", authHandler.RegisterRoutes)

	categoryHandler := handler.NewCategoryHandler(stores.Categories)
	itemHandler := handler.NewMenuItemHandler(stores.Items)
	orderHandler := handler.NewOrderHandler(placer, stores.Orders)
	settingsHandler := handler.NewSettingsHandler(stores.Settings)

	// Public routes: browse the menu, place an order, read branding.
	r.Route("/categories", categoryHandler.RegisterPublicRoutes)
	r.Route("/items", itemHandler.RegisterPublicRoutes)
	r.Route("/orders", orderHandler.RegisterPublicRoutes)
	r.Route("/settings", settingsHandler.RegisterPublicRoutes)

	// Owner routes.
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireOwner(cfg.JWTSecret))

		r.Route("/owner", func(r chi.Router) {
			r.Route("/categories", categoryHandler.RegisterOwnerRoutes)
			r.Route("/items", itemHandler.RegisterOwnerRoutes)
			r.Route("/orders", orderHandler.RegisterOwnerRoutes)
			r.Route("/settings", settingsHandler.RegisterOwnerRoutes)
		})
	})

	return r
}
