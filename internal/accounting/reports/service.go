package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/accounting/accounts"
	"github.com/meridian-erp/meridian-erp/internal/platform/cache"
)

// Service generates financial reports. Generation is a pure read: identical
// filters yield identical output, which is what makes the Redis cache safe.
type Service struct {
	repo     Repository
	accounts accounts.Repository
	cache    *cache.ReportCache
}

func NewService(repo Repository, accountRepo accounts.Repository, reportCache *cache.ReportCache) *Service {
	return &Service{repo: repo, accounts: accountRepo, cache: reportCache}
}

func cacheKey(report string, period Period) string {
	from, to := "", ""
	if period.From != nil {
		from = period.From.Format("2006-01-02")
	}
	if period.To != nil {
		to = period.To.Format("2006-01-02")
	}
	return fmt.Sprintf("reports:%s:%s:%s", report, from, to)
}

// TrialBalance builds the trial balance over the period.
func (s *Service) TrialBalance(ctx context.Context, period Period, fresh bool) (TrialBalance, error) {
	key := cacheKey("tb", period)
	if !fresh {
		var cached TrialBalance
		if s.cache.Get(ctx, key, &cached) {
			return cached, nil
		}
	}
	activity, err := s.repo.FetchAccountActivity(ctx, period)
	if err != nil {
		return TrialBalance{}, fmt.Errorf("fetch activity: %w", err)
	}
	tb := BuildTrialBalance(activity)
	s.cache.Set(ctx, key, tb)
	return tb, nil
}

// BalanceSheet builds the balance sheet as of a cutoff date (all posted
// activity up to and including the date).
func (s *Service) BalanceSheet(ctx context.Context, asOf *time.Time, fresh bool) (BalanceSheet, error) {
	period := Period{To: asOf}
	key := cacheKey("bs", period)
	if !fresh {
		var cached BalanceSheet
		if s.cache.Get(ctx, key, &cached) {
			return cached, nil
		}
	}
	activity, err := s.repo.FetchAccountActivity(ctx, period)
	if err != nil {
		return BalanceSheet{}, fmt.Errorf("fetch activity: %w", err)
	}
	bs := BuildBalanceSheet(activity)
	s.cache.Set(ctx, key, bs)
	return bs, nil
}

// IncomeStatement builds revenue minus expense over the period.
func (s *Service) IncomeStatement(ctx context.Context, period Period, fresh bool) (IncomeStatement, error) {
	key := cacheKey("is", period)
	if !fresh {
		var cached IncomeStatement
		if s.cache.Get(ctx, key, &cached) {
			return cached, nil
		}
	}
	activity, err := s.repo.FetchAccountActivity(ctx, period)
	if err != nil {
		return IncomeStatement{}, fmt.Errorf("fetch activity: %w", err)
	}
	is := BuildIncomeStatement(activity)
	s.cache.Set(ctx, key, is)
	return is, nil
}

// GeneralLedger lists posted lines chronologically, optionally filtered by
// account.
func (s *Service) GeneralLedger(ctx context.Context, accountID *int64, period Period) (GeneralLedger, error) {
	lines, err := s.repo.FetchLedgerLines(ctx, accountID, period)
	if err != nil {
		return GeneralLedger{}, fmt.Errorf("fetch lines: %w", err)
	}
	return BuildGeneralLedger(lines), nil
}

// AccountStatement builds the running-balance statement for one account. The
// opening balance covers posted activity strictly before the range start; an
// open-ended range starts from zero.
func (s *Service) AccountStatement(ctx context.Context, accountID int64, period Period) (AccountStatement, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return AccountStatement{}, err
	}

	opening := decimal.Zero
	if period.From != nil {
		debit, credit, err := s.repo.FetchOpeningActivity(ctx, accountID, *period.From)
		if err != nil {
			return AccountStatement{}, fmt.Errorf("fetch opening: %w", err)
		}
		if account.Type.DebitNatured() {
			opening = debit.Sub(credit)
		} else {
			opening = credit.Sub(debit)
		}
	}

	lines, err := s.repo.FetchLedgerLines(ctx, &accountID, period)
	if err != nil {
		return AccountStatement{}, fmt.Errorf("fetch lines: %w", err)
	}
	return BuildAccountStatement(account, opening, lines), nil
}
