package contract

import (
	"log/slog"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/paymentterm"
)

type RepositoryAPI interface {
	Create(c *Contract) error
	GetByID(id int64) (*Contract, error)
	List(tenantID int64, limit, offset int) ([]*Contract, error)
	Update(c *Contract) error
	Deactivate(id int64) error

	ReplacePaymentTerms(contractID int64, terms []ContractPaymentTerm) error
	ListPaymentTerms(contractID int64) ([]*ContractPaymentTerm, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(tenantID int64, dto CreateContractDTO, actorID int64) (*Contract, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := &Contract{
		TenantID:    tenantID,
		DealID:      dto.DealID,
		CompanyID:   dto.CompanyID,
		Name:        dto.Name,
		Description: dto.Description,
		Value:       dto.Value,
		Currency:    dto.Currency,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		IsActive:    true,
		CreatedBy:   actorID,
	}
	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create contract", "error", err, "tenant_id", tenantID)
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(tenantID, id int64) (*Contract, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrContractNotFound
	}
	if c.TenantID != tenantID {
		return nil, internal.ErrUnauthorizedAccess
	}
	return c, nil
}

func (s *Service) List(tenantID int64, limit, offset int) ([]*Contract, error) {
	return s.repo.List(tenantID, limit, offset)
}

func (s *Service) Update(tenantID, id int64, dto UpdateContractDTO) (*Contract, error) {
	c, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		c.Name = *dto.Name
	}
	if dto.Description != nil {
		c.Description = *dto.Description
	}
	if dto.Value != nil {
		if dto.Value.IsNegative() {
			return nil, internal.NewValidationFieldError("value", "value cannot be negative", internal.ErrCodeValidationFailed)
		}
		c.Value = *dto.Value
	}
	if dto.Currency != nil {
		c.Currency = *dto.Currency
	}
	if dto.StartDate != nil {
		c.StartDate = dto.StartDate
	}
	if dto.EndDate != nil {
		c.EndDate = dto.EndDate
	}
	if dto.SignedAt != nil {
		c.SignedAt = dto.SignedAt
	}

	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update contract", "error", err, "contract_id", id)
		return nil, err
	}
	return c, nil
}

func (s *Service) Deactivate(tenantID, id int64) error {
	if _, err := s.Get(tenantID, id); err != nil {
		return err
	}
	return s.repo.Deactivate(id)
}

// SetPaymentTerms replaces the contract's installment schedule, recalculating
// amounts against the contract value.
func (s *Service) SetPaymentTerms(tenantID, contractID int64, dto SetPaymentTermsDTO) ([]*ContractPaymentTerm, error) {
	c, err := s.Get(tenantID, contractID)
	if err != nil {
		return nil, err
	}

	if err := paymentterm.ValidateTerms(dto.Terms); err != nil {
		return nil, err
	}
	paymentterm.CalculateAll(dto.Terms, c.Value)

	rows := make([]ContractPaymentTerm, 0, len(dto.Terms))
	for _, t := range dto.Terms {
		rows = append(rows, ContractPaymentTerm{
			ContractID:        c.ID,
			InstallmentNumber: t.InstallmentNumber,
			Percentage:        t.Percentage,
			FixedAmount:       t.FixedAmount,
			DueDate:           t.DueDate,
			CalculatedAmount:  t.CalculatedAmount,
		})
	}

	if err := s.repo.ReplacePaymentTerms(c.ID, rows); err != nil {
		s.logger.Error("failed to set contract payment terms", "error", err, "contract_id", c.ID)
		return nil, err
	}

	return s.repo.ListPaymentTerms(c.ID)
}

func (s *Service) PaymentTerms(tenantID, contractID int64) ([]*ContractPaymentTerm, error) {
	if _, err := s.Get(tenantID, contractID); err != nil {
		return nil, err
	}
	return s.repo.ListPaymentTerms(contractID)
}
