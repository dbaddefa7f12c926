package reports

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/trial-balance", h.TrialBalance)
	r.Get("/trial-balance.xlsx", h.TrialBalanceXLSX)
	r.Get("/balance-sheet", h.BalanceSheet)
	r.Get("/income-statement", h.IncomeStatement)
	r.Get("/general-ledger", h.GeneralLedger)
	r.Get("/account-statement", h.AccountStatement)
	r.Get("/account-statement.pdf", h.AccountStatementPDF)
}
