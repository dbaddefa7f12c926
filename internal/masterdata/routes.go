package masterdata

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.ListCustomers)
		r.Post("/", h.CreateCustomer)
		r.Get("/{id}", h.GetCustomer)
		r.Put("/{id}", h.UpdateCustomer)
	})
	r.Route("/suppliers", func(r chi.Router) {
		r.Get("/", h.ListSuppliers)
		r.Post("/", h.CreateSupplier)
		r.Get("/{id}", h.GetSupplier)
		r.Put("/{id}", h.UpdateSupplier)
	})
	r.Route("/scaffolds", func(r chi.Router) {
		r.Get("/", h.ListScaffolds)
		r.Post("/", h.CreateScaffold)
		r.Get("/{id}", h.GetScaffold)
		r.Put("/{id}", h.UpdateScaffold)
	})
}
