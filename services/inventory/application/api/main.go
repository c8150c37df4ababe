package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/barstock/pkg/app"
	"github.com/ghuser/barstock/services/inventory/application/handlers"
	appsvcs "github.com/ghuser/barstock/services/inventory/application/services"
)

// InventoryRoutes registers inventory endpoints on the provided chi router.
func InventoryRoutes(r chi.Router, a *app.Application) {
	Routes(r, appsvcs.New(a))
}

// Routes mounts the inventory endpoints for an already wired service set.
func Routes(r chi.Router, svcs *appsvcs.Services) {
	r.Group(func(r chi.Router) {
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Get("/summary", handlers.NewGetSummaryHandler(svcs).Execute)
			r.Put("/summary", handlers.SummaryIsNotAnItem)
			r.Delete("/summary", handlers.SummaryIsNotAnItem)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.NewGetItemHandler(svcs).Execute)
				r.Put("/", handlers.NewPutItemHandler(svcs).Execute)
				r.Delete("/", handlers.NewDeleteItemHandler(svcs).Execute)
				r.Patch("/adjust", handlers.NewAdjustStockHandler(svcs).Execute)
			})
		})
	})
}
