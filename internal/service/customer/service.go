package customer

import (
	"context"
	"fmt"

	"github.com/gestionpro/erp-backend-go/internal/domain/customer"
)

type CustomerServiceImpl struct {
	customerRepo customer.CustomerRepository
}

func NewCustomerService(customerRepo customer.CustomerRepository) customer.CustomerService {
	return &CustomerServiceImpl{customerRepo: customerRepo}
}

// Create implements customer.CustomerService.
func (s *CustomerServiceImpl) Create(ctx context.Context, req customer.CreateCustomerRequest) (customer.Customer, error) {
	if err := req.Validate(); err != nil {
		return customer.Customer{}, err
	}

	if req.Email != nil {
		exists, err := s.customerRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return customer.Customer{}, fmt.Errorf("failed to check customer email: %w", err)
		}
		if exists {
			return customer.Customer{}, customer.ErrCustomerEmailExists
		}
	}

	return s.customerRepo.Create(ctx, customer.Customer{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		IsProspect: req.IsProspect,
		Notes:      req.Notes,
	})
}

// GetByID implements customer.CustomerService.
func (s *CustomerServiceImpl) GetByID(ctx context.Context, id string) (customer.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

// List implements customer.CustomerService.
func (s *CustomerServiceImpl) List(ctx context.Context, req customer.ListCustomersRequest) ([]customer.Customer, int64, error) {
	return s.customerRepo.List(ctx, req)
}

// Update implements customer.CustomerService.
func (s *CustomerServiceImpl) Update(ctx context.Context, req customer.UpdateCustomerRequest) (customer.Customer, error) {
	if err := req.Validate(); err != nil {
		return customer.Customer{}, err
	}
	return s.customerRepo.Update(ctx, req)
}

// ConvertProspect implements customer.CustomerService.
func (s *CustomerServiceImpl) ConvertProspect(ctx context.Context, id string) (customer.Customer, error) {
	return s.customerRepo.ConvertProspect(ctx, id)
}

// Delete implements customer.CustomerService.
func (s *CustomerServiceImpl) Delete(ctx context.Context, id string) error {
	return s.customerRepo.Delete(ctx, id)
}
