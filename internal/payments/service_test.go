package payments

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/accounting/journals"
	"github.com/meridian-erp/meridian-erp/internal/contracts"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeRepo struct {
	payments map[int64]*Payment
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{payments: make(map[int64]*Payment), nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, p Payment) (int64, error) {
	id := f.nextID
	f.nextID++
	p.ID = id
	p.CreatedAt = time.Now()
	f.payments[id] = &p
	return id, nil
}

func (f *fakeRepo) SetJournalEntry(ctx context.Context, id, entryID int64) error {
	p, ok := f.payments[id]
	if !ok {
		return ErrPaymentNotFound
	}
	p.JournalEntryID = &entryID
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.payments[id]; !ok {
		return ErrPaymentNotFound
	}
	delete(f.payments, id)
	return nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return Payment{}, ErrPaymentNotFound
	}
	return *p, nil
}

func (f *fakeRepo) List(ctx context.Context, req ListPaymentsRequest) ([]Payment, int, error) {
	var out []Payment
	for _, p := range f.payments {
		if req.ContractID != nil && p.ContractID != *req.ContractID {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	return fmt.Sprintf("PY-%s-%04d", date.Format("0601"), len(f.payments)+1), nil
}

type fakeContracts struct {
	contract contracts.Contract
	paid     decimal.Decimal
}

func (f *fakeContracts) Get(ctx context.Context, id int64) (*contracts.Contract, error) {
	if id != f.contract.ID {
		return nil, contracts.ErrContractNotFound
	}
	c := f.contract
	return &c, nil
}

func (f *fakeContracts) Balance(ctx context.Context, id int64) (contracts.Balance, error) {
	if id != f.contract.ID {
		return contracts.Balance{}, contracts.ErrContractNotFound
	}
	outstanding := f.contract.Total.Sub(f.paid)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	return contracts.Balance{ContractID: id, Total: f.contract.Total, Paid: f.paid, Outstanding: outstanding}, nil
}

type fakeJournal struct {
	posted []journals.DraftInput
	fail   error
	nextID int64
}

func (f *fakeJournal) CreateAndPost(ctx context.Context, in journals.DraftInput) (journals.JournalEntry, error) {
	if f.fail != nil {
		return journals.JournalEntry{}, f.fail
	}
	f.posted = append(f.posted, in)
	f.nextID++
	return journals.JournalEntry{ID: f.nextID, Status: journals.EntryStatusPosted}, nil
}

func newTestService() (*Service, *fakeRepo, *fakeContracts, *fakeJournal) {
	repo := newFakeRepo()
	cp := &fakeContracts{contract: contracts.Contract{
		ID:             1,
		ContractNumber: "CT-2405-0001",
		Status:         contracts.ContractStatusActive,
		Total:          dec("1000"),
	}}
	journal := &fakeJournal{}
	svc := NewService(slog.Default(), repo, cp, journal, PostingAccounts{CashAccountID: 121, RevenueAccountID: 41})
	return svc, repo, cp, journal
}

func paymentReq(amount string) CreatePaymentRequest {
	return CreatePaymentRequest{
		ContractID:  1,
		Amount:      dec(amount),
		Method:      "CASH",
		PaymentDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreatePostsBalancedEntry(t *testing.T) {
	svc, _, _, journal := newTestService()

	payment, err := svc.Create(context.Background(), 7, paymentReq("400"))
	require.NoError(t, err)
	assert.Equal(t, "PY-2405-0001", payment.PaymentNumber)
	require.NotNil(t, payment.JournalEntryID)

	require.Len(t, journal.posted, 1)
	in := journal.posted[0]
	require.NotNil(t, in.Reference)
	assert.Equal(t, journals.ReferencePayment, in.Reference.Type)
	assert.Equal(t, payment.ID, in.Reference.ID)
	require.Len(t, in.Lines, 2)
	assert.Equal(t, int64(121), in.Lines[0].AccountID)
	assert.True(t, in.Lines[0].Debit.Equal(dec("400")))
	assert.Equal(t, int64(41), in.Lines[1].AccountID)
	assert.True(t, in.Lines[1].Credit.Equal(dec("400")))
	assert.NoError(t, in.Validate())
}

func TestCreateRejectsOverpayment(t *testing.T) {
	svc, repo, cp, _ := newTestService()
	cp.paid = dec("800")

	_, err := svc.Create(context.Background(), 1, paymentReq("250"))
	assert.ErrorIs(t, err, ErrOverpayment)
	assert.ErrorIs(t, err, httpx.ErrValidation)
	assert.Empty(t, repo.payments)
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.Create(context.Background(), 1, paymentReq("0"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.Create(context.Background(), 1, paymentReq("-5"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCreateRejectsCancelledContract(t *testing.T) {
	svc, _, cp, _ := newTestService()
	cp.contract.Status = contracts.ContractStatusCancelled

	_, err := svc.Create(context.Background(), 1, paymentReq("100"))
	assert.ErrorIs(t, err, ErrContractClosed)
	assert.ErrorIs(t, err, httpx.ErrState)
}

func TestCreateRollsBackOnPostingFailure(t *testing.T) {
	svc, repo, _, journal := newTestService()
	journal.fail = fmt.Errorf("ledger unavailable")

	_, err := svc.Create(context.Background(), 1, paymentReq("100"))
	require.Error(t, err)
	assert.Empty(t, repo.payments, "payment row must not survive a failed posting")
}

func TestOutstandingTracksPayments(t *testing.T) {
	svc, _, cp, _ := newTestService()
	cp.paid = dec("350")

	outstanding, err := svc.Outstanding(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, outstanding.Equal(dec("650")), "got %s", outstanding)
}
