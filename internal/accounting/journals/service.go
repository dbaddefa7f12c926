package journals

import (
	"context"
	"fmt"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/accounting/accounts"
	"github.com/meridian-erp/meridian-erp/internal/accounting/shared"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

// AccountPort resolves chart-of-accounts references during validation.
type AccountPort interface {
	Get(ctx context.Context, id int64) (accounts.Account, error)
}

// AuditPort records journal lifecycle events.
type AuditPort interface {
	Record(ctx context.Context, log internalShared.AuditLog) error
}

// CachePort drops cached report payloads after postings change the ledger.
type CachePort interface {
	Invalidate(ctx context.Context, prefix string)
}

// MetricsPort counts successful ledger postings.
type MetricsPort interface {
	RecordPosting()
}

type Service struct {
	repo     Repository
	accounts AccountPort
	audit    AuditPort
	cache    CachePort
	metrics  MetricsPort
	now      func() time.Time
}

func NewService(repo Repository, accountPort AccountPort, audit AuditPort, cache CachePort) *Service {
	return &Service{repo: repo, accounts: accountPort, audit: audit, cache: cache, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// WithMetrics wires the postings counter.
func (s *Service) WithMetrics(m MetricsPort) {
	s.metrics = m
}

// CreateDraft validates and persists a new draft entry. The entry number is
// generated inside the same transaction as the insert so concurrent drafts
// cannot collide or leave gaps.
func (s *Service) CreateDraft(ctx context.Context, in DraftInput) (JournalEntry, error) {
	if err := in.Validate(); err != nil {
		return JournalEntry{}, err
	}
	if err := s.checkAccounts(ctx, in.Lines); err != nil {
		return JournalEntry{}, err
	}

	debit, credit := in.Totals()
	entry := JournalEntry{
		EntryDate:   in.Date,
		Description: in.Description,
		Reference:   in.Reference,
		Status:      EntryStatusDraft,
		TotalDebit:  debit,
		TotalCredit: credit,
		CreatedBy:   in.ActorID,
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		number, err := tx.NextEntryNumber(ctx)
		if err != nil {
			return err
		}
		entry.EntryNumber = number
		inserted, err := tx.InsertEntry(ctx, entry)
		if err != nil {
			return err
		}
		if err := tx.InsertLines(ctx, inserted.ID, toLines(inserted.ID, in.Lines)); err != nil {
			return err
		}
		entry = inserted
		return nil
	})
	if err != nil {
		return JournalEntry{}, err
	}
	entry.Lines = toLines(entry.ID, in.Lines)
	return entry, nil
}

// Update replaces the fields and lines of a draft entry, revalidating exactly
// as CreateDraft. Non-draft entries are immutable.
func (s *Service) Update(ctx context.Context, id int64, in DraftInput) (JournalEntry, error) {
	if err := in.Validate(); err != nil {
		return JournalEntry{}, err
	}
	if err := s.checkAccounts(ctx, in.Lines); err != nil {
		return JournalEntry{}, err
	}

	var entry JournalEntry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != EntryStatusDraft {
			return shared.ErrNotDraft
		}
		debit, credit := in.Totals()
		current.EntryDate = in.Date
		current.Description = in.Description
		current.Reference = in.Reference
		current.TotalDebit = debit
		current.TotalCredit = credit
		if err := tx.UpdateEntry(ctx, current); err != nil {
			return err
		}
		if err := tx.DeleteLines(ctx, current.ID); err != nil {
			return err
		}
		if err := tx.InsertLines(ctx, current.ID, toLines(current.ID, in.Lines)); err != nil {
			return err
		}
		entry = current
		entry.Lines = toLines(current.ID, in.Lines)
		return nil
	})
	if err != nil {
		return JournalEntry{}, err
	}
	return entry, nil
}

// Post transitions a draft to POSTED. The transition is terminal: corrections
// to a posted entry require a new reversing entry.
func (s *Service) Post(ctx context.Context, id, actorID int64) (JournalEntry, error) {
	var entry JournalEntry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != EntryStatusDraft {
			return shared.ErrNotDraft
		}
		if err := tx.UpdateStatus(ctx, current.ID, EntryStatusPosted); err != nil {
			return err
		}
		entry = current
		entry.Status = EntryStatusPosted
		return nil
	})
	if err != nil {
		return JournalEntry{}, err
	}
	s.afterLedgerChange(ctx, actorID, "journal.post", entry)
	return entry, nil
}

// CreateAndPost creates a balanced entry and posts it within one transaction.
// Used by modules that generate ledger activity from their own documents
// (payments, payroll).
func (s *Service) CreateAndPost(ctx context.Context, in DraftInput) (JournalEntry, error) {
	if err := in.Validate(); err != nil {
		return JournalEntry{}, err
	}
	if err := s.checkAccounts(ctx, in.Lines); err != nil {
		return JournalEntry{}, err
	}

	debit, credit := in.Totals()
	entry := JournalEntry{
		EntryDate:   in.Date,
		Description: in.Description,
		Reference:   in.Reference,
		Status:      EntryStatusPosted,
		TotalDebit:  debit,
		TotalCredit: credit,
		CreatedBy:   in.ActorID,
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		number, err := tx.NextEntryNumber(ctx)
		if err != nil {
			return err
		}
		entry.EntryNumber = number
		inserted, err := tx.InsertEntry(ctx, entry)
		if err != nil {
			return err
		}
		if err := tx.InsertLines(ctx, inserted.ID, toLines(inserted.ID, in.Lines)); err != nil {
			return err
		}
		entry = inserted
		return nil
	})
	if err != nil {
		return JournalEntry{}, err
	}
	entry.Lines = toLines(entry.ID, in.Lines)
	s.afterLedgerChange(ctx, in.ActorID, "journal.post", entry)
	return entry, nil
}

// Cancel transitions a draft to CANCELLED. Posted entries cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, id, actorID int64) (JournalEntry, error) {
	var entry JournalEntry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != EntryStatusDraft {
			return shared.ErrNotDraft
		}
		if err := tx.UpdateStatus(ctx, current.ID, EntryStatusCancelled); err != nil {
			return err
		}
		entry = current
		entry.Status = EntryStatusCancelled
		return nil
	})
	if err != nil {
		return JournalEntry{}, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, internalShared.AuditLog{
			ActorID:  actorID,
			Action:   "journal.cancel",
			Entity:   "journal_entry",
			EntityID: fmt.Sprintf("%d", entry.ID),
			Meta:     map[string]any{"number": entry.EntryNumber},
			At:       s.now(),
		})
	}
	return entry, nil
}

// Delete removes a draft entry and its lines. Posted and cancelled entries
// stay in the ledger permanently.
func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	var number string
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != EntryStatusDraft {
			return shared.ErrNotDraft
		}
		number = current.EntryNumber
		return tx.DeleteEntry(ctx, current.ID)
	})
	if err != nil {
		return err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, internalShared.AuditLog{
			ActorID:  actorID,
			Action:   "journal.delete",
			Entity:   "journal_entry",
			EntityID: fmt.Sprintf("%d", id),
			Meta:     map[string]any{"number": number},
			At:       s.now(),
		})
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (JournalEntry, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]JournalEntry, error) {
	return s.repo.List(ctx, filter)
}

// checkAccounts verifies every referenced account exists, is active, and is a
// postable leaf.
func (s *Service) checkAccounts(ctx context.Context, lines []LineInput) error {
	if s.accounts == nil {
		return nil
	}
	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		account, err := s.accounts.Get(ctx, line.AccountID)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return shared.ErrAccountInactive
		}
		if account.IsParent {
			return shared.ErrAccountNotLeaf
		}
	}
	return nil
}

func (s *Service) afterLedgerChange(ctx context.Context, actorID int64, action string, entry JournalEntry) {
	if s.audit != nil {
		meta := map[string]any{"number": entry.EntryNumber}
		if entry.Reference != nil {
			meta["reference_type"] = string(entry.Reference.Type)
			meta["reference_id"] = entry.Reference.ID
		}
		_ = s.audit.Record(ctx, internalShared.AuditLog{
			ActorID:  actorID,
			Action:   action,
			Entity:   "journal_entry",
			EntityID: fmt.Sprintf("%d", entry.ID),
			Meta:     meta,
			At:       s.now(),
		})
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, "reports:")
	}
	if s.metrics != nil {
		s.metrics.RecordPosting()
	}
}

func toLines(entryID int64, inputs []LineInput) []JournalLine {
	out := make([]JournalLine, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, JournalLine{
			EntryID:   entryID,
			AccountID: in.AccountID,
			Debit:     in.Debit.Round(2),
			Credit:    in.Credit.Round(2),
			Memo:      in.Memo,
		})
	}
	return out
}
