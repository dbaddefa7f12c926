package hr

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.ListEmployees)
		r.Post("/", h.CreateEmployee)
		r.Get("/{id}", h.GetEmployee)
		r.Put("/{id}", h.UpdateEmployee)
	})
	r.Route("/salaries", func(r chi.Router) {
		r.Get("/", h.ListSalaries)
		r.Post("/", h.CreateSalary)
		r.Get("/{id}", h.GetSalary)
		r.Post("/{id}/pay", h.PaySalary)
	})
}
