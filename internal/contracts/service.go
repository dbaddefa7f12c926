package contracts

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

// ErrContractNotActive rejects mutations of contracts that left the ACTIVE
// state.
var ErrContractNotActive = fmt.Errorf("%w: contract is not active", httpx.ErrState)

// ErrNegativeCharge rejects negative discounts and transport charges, which
// would inflate the computed totals.
var ErrNegativeCharge = fmt.Errorf("%w: discounts and charges cannot be negative", httpx.ErrValidation)

// RateCard carries the rental rates of one scaffold type.
type RateCard struct {
	DailyRate   decimal.Decimal
	MonthlyRate decimal.Decimal
}

// CustomerPort verifies that the contract counterparty exists.
type CustomerPort interface {
	Exists(ctx context.Context, id int64) error
}

// EquipmentPort resolves scaffold rates for contract lines.
type EquipmentPort interface {
	Rates(ctx context.Context, scaffoldID int64) (RateCard, error)
}

// AuditPort records contract lifecycle events.
type AuditPort interface {
	Record(ctx context.Context, log internalShared.AuditLog) error
}

type Service struct {
	repo      Repository
	customers CustomerPort
	equipment EquipmentPort
	audit     AuditPort
	now       func() time.Time
}

func NewService(repo Repository, customers CustomerPort, equipment EquipmentPort, audit AuditPort) *Service {
	return &Service{repo: repo, customers: customers, equipment: equipment, audit: audit, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Create builds a new ACTIVE contract. Line and contract totals are always
// recomputed server-side from the scaffold rate cards; client-sent amounts are
// never trusted. The contract end date is the latest line end date.
func (s *Service) Create(ctx context.Context, actorID int64, req CreateContractRequest) (*Contract, error) {
	if req.TransportCost.IsNegative() || req.TotalDiscount.IsNegative() {
		return nil, ErrNegativeCharge
	}
	if err := s.customers.Exists(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	lines, endDate, err := s.buildLines(ctx, req.StartDate, req.Lines)
	if err != nil {
		return nil, err
	}

	subtotal, total := ContractTotals(lines, req.TransportCost, req.TotalDiscount)
	contract := Contract{
		CustomerID:    req.CustomerID,
		CreatedBy:     actorID,
		StartDate:     req.StartDate,
		EndDate:       endDate,
		Status:        ContractStatusActive,
		PaymentType:   PaymentType(req.PaymentType),
		TransportCost: req.TransportCost.Round(2),
		TotalDiscount: req.TotalDiscount.Round(2),
		Subtotal:      subtotal,
		Total:         total,
		Notes:         req.Notes,
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		number, err := tx.GenerateNumber(ctx, req.StartDate)
		if err != nil {
			return err
		}
		contract.ContractNumber = number
		id, err := tx.Create(ctx, contract)
		if err != nil {
			return err
		}
		contract.ID = id
		for i := range lines {
			lines[i].ContractID = id
			if err := tx.InsertLine(ctx, lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	contract.Lines = lines
	s.recordAudit(ctx, actorID, "contract.create", contract.ID, map[string]any{
		"number": contract.ContractNumber,
		"total":  contract.Total.String(),
	})
	return &contract, nil
}

// Update replaces charges and, when provided, the full line set of an ACTIVE
// contract, recomputing all derived totals.
func (s *Service) Update(ctx context.Context, actorID, id int64, req UpdateContractRequest) (*Contract, error) {
	if (req.TransportCost != nil && req.TransportCost.IsNegative()) ||
		(req.TotalDiscount != nil && req.TotalDiscount.IsNegative()) {
		return nil, ErrNegativeCharge
	}
	var updated Contract
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		current, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != ContractStatusActive {
			return ErrContractNotActive
		}
		if req.TransportCost != nil {
			current.TransportCost = req.TransportCost.Round(2)
		}
		if req.TotalDiscount != nil {
			current.TotalDiscount = req.TotalDiscount.Round(2)
		}
		if req.Notes != nil {
			current.Notes = req.Notes
		}
		if req.Lines != nil {
			lines, endDate, err := s.buildLines(ctx, current.StartDate, *req.Lines)
			if err != nil {
				return err
			}
			if err := tx.DeleteLines(ctx, current.ID); err != nil {
				return err
			}
			for i := range lines {
				lines[i].ContractID = current.ID
				if err := tx.InsertLine(ctx, lines[i]); err != nil {
					return err
				}
			}
			current.Lines = lines
			current.EndDate = endDate
		}
		current.Subtotal, current.Total = ContractTotals(current.Lines, current.TransportCost, current.TotalDiscount)
		if err := tx.Update(ctx, *current); err != nil {
			return err
		}
		updated = *current
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actorID, "contract.update", updated.ID, map[string]any{
		"number": updated.ContractNumber,
		"total":  updated.Total.String(),
	})
	return &updated, nil
}

// Cancel transitions an ACTIVE contract to CANCELLED.
func (s *Service) Cancel(ctx context.Context, actorID, id int64) (*Contract, error) {
	return s.transition(ctx, actorID, id, ContractStatusCancelled, "contract.cancel")
}

// Complete transitions an ACTIVE contract to COMPLETED once all equipment is
// returned.
func (s *Service) Complete(ctx context.Context, actorID, id int64) (*Contract, error) {
	return s.transition(ctx, actorID, id, ContractStatusCompleted, "contract.complete")
}

func (s *Service) transition(ctx context.Context, actorID, id int64, to ContractStatus, action string) (*Contract, error) {
	var contract *Contract
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		current, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != ContractStatusActive {
			return ErrContractNotActive
		}
		if err := tx.UpdateStatus(ctx, current.ID, to); err != nil {
			return err
		}
		current.Status = to
		contract = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actorID, action, contract.ID, map[string]any{"number": contract.ContractNumber})
	return contract, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Contract, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListContractsRequest) ([]Contract, int, error) {
	return s.repo.List(ctx, req)
}

// Balance reports the settled and outstanding amounts of a contract.
// Outstanding never goes negative; overpayments surface as outstanding zero.
func (s *Service) Balance(ctx context.Context, id int64) (Balance, error) {
	contract, err := s.repo.Get(ctx, id)
	if err != nil {
		return Balance{}, err
	}
	paid, err := s.repo.PaidAmount(ctx, id)
	if err != nil {
		return Balance{}, err
	}
	outstanding := contract.Total.Sub(paid)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	return Balance{ContractID: id, Total: contract.Total, Paid: paid, Outstanding: outstanding}, nil
}

// ExpireOverdue marks ACTIVE contracts whose end date passed as EXPIRED.
// Called from the periodic expiry job.
func (s *Service) ExpireOverdue(ctx context.Context) (int64, error) {
	return s.repo.ExpireOverdue(ctx, s.now())
}

func (s *Service) buildLines(ctx context.Context, contractStart time.Time, reqs []CreateContractLineReq) ([]ContractLine, time.Time, error) {
	lines := make([]ContractLine, 0, len(reqs))
	endDate := contractStart
	for _, lr := range reqs {
		if lr.Discount.IsNegative() {
			return nil, time.Time{}, ErrNegativeCharge
		}
		rates, err := s.equipment.Rates(ctx, lr.ScaffoldID)
		if err != nil {
			return nil, time.Time{}, err
		}
		start := lr.StartDate
		if start.IsZero() {
			start = contractStart
		}
		durationType := DurationType(lr.DurationType)
		lineEnd := LineEndDate(start, lr.Duration, durationType)
		if lineEnd.After(endDate) {
			endDate = lineEnd
		}
		lines = append(lines, ContractLine{
			ScaffoldID:   lr.ScaffoldID,
			StartDate:    start,
			EndDate:      lineEnd,
			Duration:     lr.Duration,
			DurationType: durationType,
			Quantity:     lr.Quantity,
			DailyRate:    rates.DailyRate,
			MonthlyRate:  rates.MonthlyRate,
			Discount:     lr.Discount.Round(2),
			Total:        LineTotal(lr.Quantity, lr.Duration, durationType, rates.DailyRate, rates.MonthlyRate, lr.Discount),
		})
	}
	return lines, endDate, nil
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, contractID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, internalShared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "contract",
		EntityID: fmt.Sprintf("%d", contractID),
		Meta:     meta,
		At:       s.now(),
	})
}
