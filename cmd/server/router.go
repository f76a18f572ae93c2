package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/brandkit-api/internal/api"
	apiMiddleware "github.com/phrazzld/brandkit-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.NewMetricsMiddleware(app.metrics))
	r.Use(middleware.Recoverer)

	requestTimeout := app.config.Server.RequestTimeout()
	brandKitHandler := api.NewBrandKitHandler(app.service, requestTimeout, app.logger)
	healthHandler := api.NewHealthHandler(app.healthInfo)

	r.Route("/api", func(r chi.Router) {
		if app.jwtService != nil {
			r.Use(apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate)
		}

		r.Post("/brandkits/preview", brandKitHandler.PreviewBrandKit)
		r.Post("/brandkits/full", brandKitHandler.CreateBrandKit)
		r.Get("/brandkits/{id}", brandKitHandler.GetBrandKit)
	})

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", app.metrics.Handler())

	return r
}
