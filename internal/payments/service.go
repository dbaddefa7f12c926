package payments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/accounting/journals"
	"github.com/meridian-erp/meridian-erp/internal/contracts"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

var (
	// ErrInvalidAmount rejects zero or negative payment amounts.
	ErrInvalidAmount = fmt.Errorf("%w: payment amount must be positive", httpx.ErrValidation)
	// ErrOverpayment rejects payments exceeding the contract's outstanding
	// balance.
	ErrOverpayment = fmt.Errorf("%w: payment exceeds outstanding balance", httpx.ErrValidation)
	// ErrContractClosed rejects payments against cancelled contracts.
	ErrContractClosed = fmt.Errorf("%w: contract is cancelled", httpx.ErrState)
)

// PostingAccounts maps payments onto the chart of accounts: cash in on the
// debit side, rental revenue on the credit side.
type PostingAccounts struct {
	CashAccountID    int64
	RevenueAccountID int64
}

// ContractPort resolves the contract being settled.
type ContractPort interface {
	Get(ctx context.Context, id int64) (*contracts.Contract, error)
	Balance(ctx context.Context, id int64) (contracts.Balance, error)
}

// JournalPort posts the ledger entry recording the payment.
type JournalPort interface {
	CreateAndPost(ctx context.Context, in journals.DraftInput) (journals.JournalEntry, error)
}

type Service struct {
	logger    *slog.Logger
	repo      Repository
	contracts ContractPort
	journal   JournalPort
	accounts  PostingAccounts
	now       func() time.Time
}

func NewService(logger *slog.Logger, repo Repository, contractPort ContractPort, journal JournalPort, accounts PostingAccounts) *Service {
	return &Service{logger: logger, repo: repo, contracts: contractPort, journal: journal, accounts: accounts, now: time.Now}
}

// Create records a settlement and posts the matching ledger entry, debiting
// cash and crediting rental revenue with a PAYMENT reference back to the
// payment row. If posting fails the payment row is removed again so payments
// never exist without their ledger counterpart.
func (s *Service) Create(ctx context.Context, actorID int64, req CreatePaymentRequest) (Payment, error) {
	amount := req.Amount.Round(2)
	if !amount.IsPositive() {
		return Payment{}, ErrInvalidAmount
	}
	contract, err := s.contracts.Get(ctx, req.ContractID)
	if err != nil {
		return Payment{}, err
	}
	if contract.Status == contracts.ContractStatusCancelled {
		return Payment{}, ErrContractClosed
	}
	balance, err := s.contracts.Balance(ctx, req.ContractID)
	if err != nil {
		return Payment{}, err
	}
	if amount.GreaterThan(balance.Outstanding) {
		return Payment{}, ErrOverpayment
	}

	number, err := s.repo.GenerateNumber(ctx, req.PaymentDate)
	if err != nil {
		return Payment{}, err
	}
	payment := Payment{
		PaymentNumber: number,
		ContractID:    req.ContractID,
		Amount:        amount,
		Method:        PaymentMethod(req.Method),
		PaymentDate:   req.PaymentDate,
		Notes:         req.Notes,
		CreatedBy:     actorID,
	}
	id, err := s.repo.Create(ctx, payment)
	if err != nil {
		return Payment{}, err
	}
	payment.ID = id

	entry, err := s.journal.CreateAndPost(ctx, journals.DraftInput{
		Date:        req.PaymentDate,
		Description: fmt.Sprintf("Payment %s for contract %s", number, contract.ContractNumber),
		Reference:   &journals.Reference{Type: journals.ReferencePayment, ID: id},
		Lines: []journals.LineInput{
			{AccountID: s.accounts.CashAccountID, Debit: amount, Memo: number},
			{AccountID: s.accounts.RevenueAccountID, Credit: amount, Memo: number},
		},
		ActorID: actorID,
	})
	if err != nil {
		if delErr := s.repo.Delete(ctx, id); delErr != nil {
			s.logger.Error("rollback payment after posting failure",
				slog.Int64("payment_id", id), slog.Any("error", delErr))
		}
		return Payment{}, err
	}
	if err := s.repo.SetJournalEntry(ctx, id, entry.ID); err != nil {
		return Payment{}, err
	}
	payment.JournalEntryID = &entry.ID
	return payment, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Payment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListPaymentsRequest) ([]Payment, int, error) {
	return s.repo.List(ctx, req)
}

// Outstanding reports the remaining balance of a contract after all recorded
// payments.
func (s *Service) Outstanding(ctx context.Context, contractID int64) (decimal.Decimal, error) {
	balance, err := s.contracts.Balance(ctx, contractID)
	if err != nil {
		return decimal.Zero, err
	}
	return balance.Outstanding, nil
}
