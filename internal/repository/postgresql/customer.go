package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gestionpro/erp-backend-go/internal/domain/customer"
	"github.com/gestionpro/erp-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type customerRepositoryImpl struct {
	db *database.DB
}

func NewCustomerRepository(db *database.DB) customer.CustomerRepository {
	return &customerRepositoryImpl{db: db}
}

const customerColumns = `id, name, email, phone, address, city, is_prospect, notes, created_at, updated_at`

func scanCustomer(row pgx.Row) (customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.City,
		&c.IsProspect,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return customer.Customer{}, customer.ErrCustomerNotFound
	}
	if err != nil {
		return customer.Customer{}, err
	}
	return c, nil
}

// Create implements customer.CustomerRepository.
func (r *customerRepositoryImpl) Create(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO customers (id, name, email, phone, address, city, is_prospect, notes, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + customerColumns

	return scanCustomer(q.QueryRow(ctx, query,
		c.Name, c.Email, c.Phone, c.Address, c.City, c.IsProspect, c.Notes))
}

// GetByID implements customer.CustomerRepository.
func (r *customerRepositoryImpl) GetByID(ctx context.Context, id string) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomer(q.QueryRow(ctx, query, id))
}

// List implements customer.CustomerRepository.
func (r *customerRepositoryImpl) List(ctx context.Context, req customer.ListCustomersRequest) ([]customer.Customer, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"TRUE"}
	args := []interface{}{}
	idx := 1

	if req.Search != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR city ILIKE $%d)", idx, idx, idx))
		args = append(args, "%"+req.Search+"%")
		idx++
	}
	if req.IsProspect != nil {
		where = append(where, fmt.Sprintf("is_prospect = $%d", idx))
		args = append(args, *req.IsProspect)
		idx++
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM customers WHERE %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		customerColumns, whereClause, idx, idx+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []customer.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, total, rows.Err()
}

// Update implements customer.CustomerRepository.
func (r *customerRepositoryImpl) Update(ctx context.Context, req customer.UpdateCustomerRequest) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	idx := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.Phone != nil {
		addSet("phone", *req.Phone)
	}
	if req.Address != nil {
		addSet("address", *req.Address)
	}
	if req.City != nil {
		addSet("city", *req.City)
	}
	if req.Notes != nil {
		addSet("notes", *req.Notes)
	}

	query := fmt.Sprintf(
		`UPDATE customers SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), idx, customerColumns)
	args = append(args, req.ID)

	return scanCustomer(q.QueryRow(ctx, query, args...))
}

// ConvertProspect implements customer.CustomerRepository.
func (r *customerRepositoryImpl) ConvertProspect(ctx context.Context, id string) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE customers SET is_prospect = false, updated_at = NOW()
		WHERE id = $1 AND is_prospect = true
		RETURNING ` + customerColumns

	c, err := scanCustomer(q.QueryRow(ctx, query, id))
	if errors.Is(err, customer.ErrCustomerNotFound) {
		// Either missing or already converted; disambiguate for the caller.
		if _, getErr := r.GetByID(ctx, id); getErr == nil {
			return customer.Customer{}, customer.ErrAlreadyConverted
		}
		return customer.Customer{}, customer.ErrCustomerNotFound
	}
	return c, err
}

// ExistsByEmail implements customer.CustomerRepository.
func (r *customerRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Delete implements customer.CustomerRepository.
func (r *customerRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}
