package reports

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	period, fresh := reportQuery(r)
	tb, err := h.service.TrialBalance(r.Context(), period, fresh)
	if err != nil {
		h.logger.Error("trial balance", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tb)
}

func (h *Handler) TrialBalanceXLSX(w http.ResponseWriter, r *http.Request) {
	period, _ := reportQuery(r)
	tb, err := h.service.TrialBalance(r.Context(), period, true)
	if err != nil {
		h.logger.Error("trial balance export", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	data, err := BuildTrialBalanceXLSX(tb, periodLabel(period))
	if err != nil {
		h.logger.Error("render trial balance xlsx", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed", "")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="trial_balance.xlsx"`)
	_, _ = w.Write(data)
}

func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf := parseDate(r.URL.Query().Get("as_of"))
	fresh := r.URL.Query().Get("fresh") == "1"
	bs, err := h.service.BalanceSheet(r.Context(), asOf, fresh)
	if err != nil {
		h.logger.Error("balance sheet", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bs)
}

func (h *Handler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	period, fresh := reportQuery(r)
	is, err := h.service.IncomeStatement(r.Context(), period, fresh)
	if err != nil {
		h.logger.Error("income statement", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, is)
}

func (h *Handler) GeneralLedger(w http.ResponseWriter, r *http.Request) {
	period, _ := reportQuery(r)
	var accountID *int64
	if v := r.URL.Query().Get("account_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Account ID", "")
			return
		}
		accountID = &id
	}
	gl, err := h.service.GeneralLedger(r.Context(), accountID, period)
	if err != nil {
		h.logger.Error("general ledger", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, gl)
}

func (h *Handler) AccountStatement(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.ParseInt(r.URL.Query().Get("account_id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Account ID", "account_id is required")
		return
	}
	period, _ := reportQuery(r)
	st, err := h.service.AccountStatement(r.Context(), accountID, period)
	if err != nil {
		h.logger.Error("account statement", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}

func (h *Handler) AccountStatementPDF(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.ParseInt(r.URL.Query().Get("account_id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Account ID", "account_id is required")
		return
	}
	period, _ := reportQuery(r)
	st, err := h.service.AccountStatement(r.Context(), accountID, period)
	if err != nil {
		h.logger.Error("account statement export", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	data, err := BuildAccountStatementPDF(st, periodLabel(period))
	if err != nil {
		h.logger.Error("render statement pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed", "")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="account_statement.pdf"`)
	_, _ = w.Write(data)
}

func reportQuery(r *http.Request) (Period, bool) {
	period := Period{
		From: parseDate(r.URL.Query().Get("date_from")),
		To:   parseDate(r.URL.Query().Get("date_to")),
	}
	return period, r.URL.Query().Get("fresh") == "1"
}

func periodLabel(period Period) string {
	from, to := "...", "..."
	if period.From != nil {
		from = period.From.Format("2006-01-02")
	}
	if period.To != nil {
		to = period.To.Format("2006-01-02")
	}
	return from + " to " + to
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
