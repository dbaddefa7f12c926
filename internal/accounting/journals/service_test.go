package journals

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/accounting/accounts"
	"github.com/meridian-erp/meridian-erp/internal/accounting/shared"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

type mockRepository struct {
	entries map[int64]*JournalEntry
	lines   map[int64][]JournalLine
	nextID  int64
	counter int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		entries: make(map[int64]*JournalEntry),
		lines:   make(map[int64][]JournalLine),
		nextID:  1,
	}
}

func (m *mockRepository) Get(ctx context.Context, id int64) (JournalEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return JournalEntry{}, shared.ErrEntryNotFound
	}
	out := *e
	out.Lines = append([]JournalLine(nil), m.lines[id]...)
	return out, nil
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]JournalEntry, error) {
	var out []JournalEntry
	for _, e := range m.entries {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, &mockTxRepo{mock: m})
}

type mockTxRepo struct {
	mock *mockRepository
}

func (t *mockTxRepo) NextEntryNumber(ctx context.Context) (string, error) {
	t.mock.counter++
	return fmt.Sprintf("JE-%06d", t.mock.counter), nil
}

func (t *mockTxRepo) InsertEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error) {
	entry.ID = t.mock.nextID
	t.mock.nextID++
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	stored := entry
	t.mock.entries[entry.ID] = &stored
	return entry, nil
}

func (t *mockTxRepo) InsertLines(ctx context.Context, entryID int64, lines []JournalLine) error {
	t.mock.lines[entryID] = append(t.mock.lines[entryID], lines...)
	return nil
}

func (t *mockTxRepo) DeleteLines(ctx context.Context, entryID int64) error {
	delete(t.mock.lines, entryID)
	return nil
}

func (t *mockTxRepo) GetForUpdate(ctx context.Context, id int64) (JournalEntry, error) {
	return t.mock.Get(ctx, id)
}

func (t *mockTxRepo) UpdateEntry(ctx context.Context, entry JournalEntry) error {
	stored, ok := t.mock.entries[entry.ID]
	if !ok {
		return shared.ErrEntryNotFound
	}
	entry.Status = stored.Status
	entry.EntryNumber = stored.EntryNumber
	*stored = entry
	return nil
}

func (t *mockTxRepo) UpdateStatus(ctx context.Context, id int64, status EntryStatus) error {
	stored, ok := t.mock.entries[id]
	if !ok {
		return shared.ErrEntryNotFound
	}
	stored.Status = status
	return nil
}

func (t *mockTxRepo) DeleteEntry(ctx context.Context, id int64) error {
	if _, ok := t.mock.entries[id]; !ok {
		return shared.ErrEntryNotFound
	}
	delete(t.mock.entries, id)
	delete(t.mock.lines, id)
	return nil
}

type mockAccountPort struct {
	accounts map[int64]accounts.Account
}

func (m *mockAccountPort) Get(ctx context.Context, id int64) (accounts.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return accounts.Account{}, shared.ErrAccountNotFound
	}
	return a, nil
}

type mockAudit struct {
	actions []string
}

func (m *mockAudit) Record(ctx context.Context, log internalShared.AuditLog) error {
	m.actions = append(m.actions, log.Action)
	return nil
}

type mockCache struct {
	invalidated []string
}

func (m *mockCache) Invalidate(ctx context.Context, prefix string) {
	m.invalidated = append(m.invalidated, prefix)
}

func newTestService() (*Service, *mockRepository, *mockAudit, *mockCache) {
	repo := newMockRepository()
	audit := &mockAudit{}
	cache := &mockCache{}
	ports := &mockAccountPort{accounts: map[int64]accounts.Account{
		1: {ID: 1, Code: "121", Type: accounts.AccountTypeAsset, IsActive: true},
		2: {ID: 2, Code: "41", Type: accounts.AccountTypeRevenue, IsActive: true},
		3: {ID: 3, Code: "11", Type: accounts.AccountTypeAsset, IsActive: true, IsParent: true},
		4: {ID: 4, Code: "51", Type: accounts.AccountTypeExpense, IsActive: false},
	}}
	return NewService(repo, ports, audit, cache), repo, audit, cache
}

func balancedInput(amount string) DraftInput {
	amt := decimal.RequireFromString(amount)
	return DraftInput{
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "rental revenue",
		Lines: []LineInput{
			{AccountID: 1, Debit: amt},
			{AccountID: 2, Credit: amt},
		},
		ActorID: 7,
	}
}

func TestCreateDraftAssignsSequentialNumbers(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		entry, err := svc.CreateDraft(ctx, balancedInput("500.00"))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("JE-%06d", i), entry.EntryNumber)
		assert.Equal(t, EntryStatusDraft, entry.Status)
		assert.True(t, entry.TotalDebit.Equal(decimal.RequireFromString("500.00")))
		assert.True(t, entry.TotalDebit.Equal(entry.TotalCredit))
	}
}

func TestCreateDraftRejectsTooFewLines(t *testing.T) {
	svc, _, _, _ := newTestService()
	in := balancedInput("100.00")
	in.Lines = in.Lines[:1]

	_, err := svc.CreateDraft(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrTooFewLines)
}

func TestCreateDraftRejectsUnbalanced(t *testing.T) {
	svc, _, _, _ := newTestService()
	in := DraftInput{
		Date: time.Now(),
		Lines: []LineInput{
			{AccountID: 1, Debit: decimal.RequireFromString("100.00")},
			{AccountID: 2, Credit: decimal.RequireFromString("99.99")},
		},
	}

	_, err := svc.CreateDraft(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrUnbalanced)
}

func TestCreateDraftRejectsTwoSidedLine(t *testing.T) {
	svc, _, _, _ := newTestService()
	in := DraftInput{
		Date: time.Now(),
		Lines: []LineInput{
			{AccountID: 1, Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
			{AccountID: 2, Credit: decimal.NewFromInt(50)},
		},
	}

	_, err := svc.CreateDraft(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrBothSides)
}

func TestCreateDraftRejectsEmptyLine(t *testing.T) {
	svc, _, _, _ := newTestService()
	in := DraftInput{
		Date: time.Now(),
		Lines: []LineInput{
			{AccountID: 1},
			{AccountID: 2},
		},
	}

	_, err := svc.CreateDraft(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrEmptyLine)
}

func TestCreateDraftRejectsUnknownAccount(t *testing.T) {
	svc, _, _, _ := newTestService()
	in := balancedInput("10.00")
	in.Lines[0].AccountID = 99

	_, err := svc.CreateDraft(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrAccountNotFound)
}

func TestCreateDraftRejectsInactiveAccount(t *testing.T) {
	svc, _, _, _ := newTestService()
	in := balancedInput("10.00")
	in.Lines[0].AccountID = 4

	_, err := svc.CreateDraft(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrAccountInactive)
}

func TestCreateDraftRejectsParentAccount(t *testing.T) {
	svc, _, _, _ := newTestService()
	in := balancedInput("10.00")
	in.Lines[0].AccountID = 3

	_, err := svc.CreateDraft(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrAccountNotLeaf)
}

func TestPostIsTerminal(t *testing.T) {
	svc, _, audit, cache := newTestService()
	ctx := context.Background()

	entry, err := svc.CreateDraft(ctx, balancedInput("250.00"))
	require.NoError(t, err)

	posted, err := svc.Post(ctx, entry.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, EntryStatusPosted, posted.Status)
	assert.Contains(t, audit.actions, "journal.post")
	assert.Contains(t, cache.invalidated, "reports:")

	_, err = svc.Post(ctx, entry.ID, 7)
	assert.ErrorIs(t, err, shared.ErrNotDraft)

	err = svc.Delete(ctx, entry.ID, 7)
	assert.ErrorIs(t, err, shared.ErrNotDraft)

	_, err = svc.Cancel(ctx, entry.ID, 7)
	assert.ErrorIs(t, err, shared.ErrNotDraft)

	_, err = svc.Update(ctx, entry.ID, balancedInput("300.00"))
	assert.ErrorIs(t, err, shared.ErrNotDraft)
}

func TestUpdateReplacesDraftLines(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	entry, err := svc.CreateDraft(ctx, balancedInput("100.00"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, entry.ID, balancedInput("725.50"))
	require.NoError(t, err)
	assert.True(t, updated.TotalDebit.Equal(decimal.RequireFromString("725.50")))
	assert.Equal(t, entry.EntryNumber, updated.EntryNumber)
	assert.Len(t, repo.lines[entry.ID], 2)

	bad := balancedInput("100.00")
	bad.Lines[1].Credit = decimal.RequireFromString("99.99")
	_, err = svc.Update(ctx, entry.ID, bad)
	assert.ErrorIs(t, err, shared.ErrUnbalanced)
}

func TestDeleteDraftRemovesEntry(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	entry, err := svc.CreateDraft(ctx, balancedInput("40.00"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, entry.ID, 7))
	_, ok := repo.entries[entry.ID]
	assert.False(t, ok)

	_, err = svc.Get(ctx, entry.ID)
	assert.ErrorIs(t, err, shared.ErrEntryNotFound)
}

func TestCancelDraft(t *testing.T) {
	svc, _, audit, _ := newTestService()
	ctx := context.Background()

	entry, err := svc.CreateDraft(ctx, balancedInput("75.00"))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, entry.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, EntryStatusCancelled, cancelled.Status)
	assert.Contains(t, audit.actions, "journal.cancel")
}

func TestCreateAndPost(t *testing.T) {
	svc, _, _, cache := newTestService()
	ctx := context.Background()

	in := balancedInput("980.00")
	in.Reference = &Reference{Type: ReferencePayment, ID: 42}
	entry, err := svc.CreateAndPost(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, EntryStatusPosted, entry.Status)
	assert.Equal(t, "JE-000001", entry.EntryNumber)
	require.NotNil(t, entry.Reference)
	assert.Equal(t, ReferencePayment, entry.Reference.Type)
	assert.NotEmpty(t, cache.invalidated)
}

func TestCreateDraftRejectsInvalidReference(t *testing.T) {
	svc, _, _, _ := newTestService()
	in := balancedInput("10.00")
	in.Reference = &Reference{Type: "INVOICE", ID: 1}

	_, err := svc.CreateDraft(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrInvalidReference)
}

type mockMetrics struct {
	postings int
}

func (m *mockMetrics) RecordPosting() { m.postings++ }

func TestPostRecordsPostingMetric(t *testing.T) {
	svc, _, _, _ := newTestService()
	metrics := &mockMetrics{}
	svc.WithMetrics(metrics)
	ctx := context.Background()

	entry, err := svc.CreateDraft(ctx, balancedInput("100.00"))
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.postings, "drafts must not count as postings")

	_, err = svc.Post(ctx, entry.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.postings)

	_, err = svc.CreateAndPost(ctx, balancedInput("50.00"))
	require.NoError(t, err)
	assert.Equal(t, 2, metrics.postings)
}
