package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/accounting/shared"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a chart-of-accounts node. Child nodes inherit level from
// their parent (parent.level + 1) and may only nest under parent accounts.
func (s *Service) Create(ctx context.Context, req CreateAccountRequest) (Account, error) {
	accType := AccountType(req.Type)
	if !accType.Valid() {
		return Account{}, fmt.Errorf("%w: unknown account type %q", httpx.ErrValidation, req.Type)
	}

	account := Account{
		Code:     req.Code,
		Name:     req.Name,
		Type:     accType,
		ParentID: req.ParentID,
		IsActive: true,
		IsParent: req.IsParent,
		Level:    1,
	}

	if req.ParentID != nil {
		parent, err := s.repo.Get(ctx, *req.ParentID)
		if err != nil {
			return Account{}, fmt.Errorf("verify parent: %w", err)
		}
		if !parent.IsParent {
			return Account{}, shared.ErrParentIsLeaf
		}
		if parent.Type != accType {
			return Account{}, fmt.Errorf("%w: child type must match parent type", httpx.ErrValidation)
		}
		account.Level = parent.Level + 1
	}

	return s.repo.Create(ctx, account)
}

// Update changes name and active flag only. Code, type, and hierarchy are
// immutable once created.
func (s *Service) Update(ctx context.Context, id int64, req UpdateAccountRequest) (Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, account); err != nil {
		return Account{}, err
	}
	return account, nil
}

// Delete removes an account without journal activity. Accounts that have been
// posted against can only be deactivated.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	used, err := s.repo.HasJournalActivity(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return shared.ErrAccountInUse
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (Account, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]Account, error) {
	return s.repo.List(ctx, activeOnly)
}

// Balance resolves the signed balance of an account over an optional range.
// Only POSTED entries contribute. The sign follows the account's nature:
// debit minus credit for ASSET/EXPENSE, credit minus debit otherwise.
func (s *Service) Balance(ctx context.Context, id int64, from, to *time.Time) (Balance, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return Balance{}, err
	}
	debit, credit, err := s.repo.SumPostedActivity(ctx, id, from, to)
	if err != nil {
		return Balance{}, fmt.Errorf("sum activity: %w", err)
	}
	amount := debit.Sub(credit)
	if !account.Type.DebitNatured() {
		amount = credit.Sub(debit)
	}
	return Balance{
		AccountID: account.ID,
		Code:      account.Code,
		Type:      account.Type,
		Debit:     debit,
		Credit:    credit,
		Amount:    amount,
	}, nil
}
