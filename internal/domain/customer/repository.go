package customer

import "context"

type CustomerRepository interface {
	Create(ctx context.Context, c Customer) (Customer, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	List(ctx context.Context, req ListCustomersRequest) ([]Customer, int64, error)
	Update(ctx context.Context, req UpdateCustomerRequest) (Customer, error)
	ConvertProspect(ctx context.Context, id string) (Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type CustomerService interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	List(ctx context.Context, req ListCustomersRequest) ([]Customer, int64, error)
	Update(ctx context.Context, req UpdateCustomerRequest) (Customer, error)
	ConvertProspect(ctx context.Context, id string) (Customer, error)
	Delete(ctx context.Context, id string) error
}
