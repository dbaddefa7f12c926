package masterdata

import (
	"context"
	"fmt"

	"github.com/meridian-erp/meridian-erp/internal/contracts"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (Customer, error) {
	return s.repo.CreateCustomer(ctx, Customer{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		TaxNumber: req.TaxNumber,
		IsActive:  true,
	})
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, req UpdateCustomerRequest) (Customer, error) {
	current, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return Customer{}, err
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Phone != nil {
		current.Phone = req.Phone
	}
	if req.Email != nil {
		current.Email = req.Email
	}
	if req.Address != nil {
		current.Address = req.Address
	}
	if req.TaxNumber != nil {
		current.TaxNumber = req.TaxNumber
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	if err := s.repo.UpdateCustomer(ctx, current); err != nil {
		return Customer{}, err
	}
	return current, nil
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) ListCustomers(ctx context.Context, activeOnly bool) ([]Customer, error) {
	return s.repo.ListCustomers(ctx, activeOnly)
}

func (s *Service) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (Supplier, error) {
	return s.repo.CreateSupplier(ctx, Supplier{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
		IsActive: true,
	})
}

func (s *Service) UpdateSupplier(ctx context.Context, id int64, req UpdateSupplierRequest) (Supplier, error) {
	current, err := s.repo.GetSupplier(ctx, id)
	if err != nil {
		return Supplier{}, err
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Phone != nil {
		current.Phone = req.Phone
	}
	if req.Email != nil {
		current.Email = req.Email
	}
	if req.Address != nil {
		current.Address = req.Address
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	if err := s.repo.UpdateSupplier(ctx, current); err != nil {
		return Supplier{}, err
	}
	return current, nil
}

func (s *Service) GetSupplier(ctx context.Context, id int64) (Supplier, error) {
	return s.repo.GetSupplier(ctx, id)
}

func (s *Service) ListSuppliers(ctx context.Context, activeOnly bool) ([]Supplier, error) {
	return s.repo.ListSuppliers(ctx, activeOnly)
}

func (s *Service) CreateScaffold(ctx context.Context, req CreateScaffoldRequest) (Scaffold, error) {
	if req.DailyRate.IsNegative() || req.MonthlyRate.IsNegative() {
		return Scaffold{}, fmt.Errorf("%w: rates cannot be negative", httpx.ErrValidation)
	}
	return s.repo.CreateScaffold(ctx, Scaffold{
		Code:              req.Code,
		Name:              req.Name,
		Description:       req.Description,
		DailyRate:         req.DailyRate.Round(2),
		MonthlyRate:       req.MonthlyRate.Round(2),
		QuantityTotal:     req.QuantityTotal,
		QuantityAvailable: req.QuantityTotal,
		IsActive:          true,
	})
}

func (s *Service) UpdateScaffold(ctx context.Context, id int64, req UpdateScaffoldRequest) (Scaffold, error) {
	current, err := s.repo.GetScaffold(ctx, id)
	if err != nil {
		return Scaffold{}, err
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = req.Description
	}
	if req.DailyRate != nil {
		if req.DailyRate.IsNegative() {
			return Scaffold{}, fmt.Errorf("%w: rates cannot be negative", httpx.ErrValidation)
		}
		current.DailyRate = req.DailyRate.Round(2)
	}
	if req.MonthlyRate != nil {
		if req.MonthlyRate.IsNegative() {
			return Scaffold{}, fmt.Errorf("%w: rates cannot be negative", httpx.ErrValidation)
		}
		current.MonthlyRate = req.MonthlyRate.Round(2)
	}
	if req.QuantityTotal != nil {
		// adjust available stock by the same delta so units out on rent
		// stay accounted for
		delta := *req.QuantityTotal - current.QuantityTotal
		current.QuantityTotal = *req.QuantityTotal
		current.QuantityAvailable += delta
		if current.QuantityAvailable < 0 {
			current.QuantityAvailable = 0
		}
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	if err := s.repo.UpdateScaffold(ctx, current); err != nil {
		return Scaffold{}, err
	}
	return current, nil
}

func (s *Service) GetScaffold(ctx context.Context, id int64) (Scaffold, error) {
	return s.repo.GetScaffold(ctx, id)
}

func (s *Service) ListScaffolds(ctx context.Context, activeOnly bool) ([]Scaffold, error) {
	return s.repo.ListScaffolds(ctx, activeOnly)
}

// ContractGateway adapts master data lookups to the ports the contracts
// module expects.
type ContractGateway struct {
	service *Service
}

func NewContractGateway(service *Service) *ContractGateway {
	return &ContractGateway{service: service}
}

// Exists verifies the customer is present and active.
func (g *ContractGateway) Exists(ctx context.Context, id int64) error {
	customer, err := g.service.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	if !customer.IsActive {
		return fmt.Errorf("%w: customer is inactive", httpx.ErrState)
	}
	return nil
}

// Rates resolves the rate card of an active scaffold type.
func (g *ContractGateway) Rates(ctx context.Context, scaffoldID int64) (contracts.RateCard, error) {
	scaffold, err := g.service.GetScaffold(ctx, scaffoldID)
	if err != nil {
		return contracts.RateCard{}, err
	}
	if !scaffold.IsActive {
		return contracts.RateCard{}, fmt.Errorf("%w: scaffold is inactive", httpx.ErrState)
	}
	return contracts.RateCard{DailyRate: scaffold.DailyRate, MonthlyRate: scaffold.MonthlyRate}, nil
}
