package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/employee"
	"github.com/gestionpro/erp-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, user_id, code, first_name, last_name, position, service_id, hired_at, is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Code,
		&e.FirstName,
		&e.LastName,
		&e.Position,
		&e.ServiceID,
		&e.HiredAt,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, user_id, code, first_name, last_name, position, service_id, hired_at, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, true, NOW(), NOW())
		RETURNING ` + employeeColumns

	return scanEmployee(q.QueryRow(ctx, query,
		e.UserID, e.Code, e.FirstName, e.LastName, e.Position, e.ServiceID, e.HiredAt))
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(q.QueryRow(ctx, query, id))
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1`
	return scanEmployee(q.QueryRow(ctx, query, userID))
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, req employee.ListEmployeesRequest) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"TRUE"}
	args := []interface{}{}
	idx := 1

	if req.Search != "" {
		where = append(where, fmt.Sprintf("(code ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", idx, idx, idx))
		args = append(args, "%"+req.Search+"%")
		idx++
	}
	if req.ServiceID != nil {
		where = append(where, fmt.Sprintf("service_id = $%d", idx))
		args = append(args, *req.ServiceID)
		idx++
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM employees WHERE %s ORDER BY last_name ASC, first_name ASC LIMIT $%d OFFSET $%d`,
		employeeColumns, whereClause, idx, idx+1)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	idx := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.FirstName != nil {
		addSet("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		addSet("last_name", *req.LastName)
	}
	if req.Position != nil {
		addSet("position", *req.Position)
	}
	if req.ServiceID != nil {
		addSet("service_id", *req.ServiceID)
	}

	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $%d`, strings.Join(sets, ", "), idx)
	args = append(args, req.ID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SetActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET is_active = $1, updated_at = NOW() WHERE id = $2`,
		active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ExistsByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CreateContract implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CreateContract(ctx context.Context, c employee.Contract) (employee.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_contracts (id, employee_id, type, salary, start_date, end_date, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW())
		RETURNING id, employee_id, type, salary, start_date, end_date, created_at`

	var created employee.Contract
	err := q.QueryRow(ctx, query,
		c.EmployeeID, string(c.Type), c.Salary, c.StartDate, c.EndDate,
	).Scan(&created.ID, &created.EmployeeID, &created.Type, &created.Salary,
		&created.StartDate, &created.EndDate, &created.CreatedAt)
	if err != nil {
		return employee.Contract{}, err
	}
	return created, nil
}

// ListContracts implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListContracts(ctx context.Context, employeeID string) ([]employee.Contract, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, type, salary, start_date, end_date, created_at
		FROM employee_contracts WHERE employee_id = $1 ORDER BY start_date DESC`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []employee.Contract
	for rows.Next() {
		var c employee.Contract
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.Type, &c.Salary,
			&c.StartDate, &c.EndDate, &c.CreatedAt); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) employee.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `id, employee_id, start_date, end_date, reason, status, decided_by, decided_at, rejection_reason, created_at`

func scanLeave(row pgx.Row) (employee.LeaveRequest, error) {
	var l employee.LeaveRequest
	err := row.Scan(
		&l.ID,
		&l.EmployeeID,
		&l.StartDate,
		&l.EndDate,
		&l.Reason,
		&l.Status,
		&l.DecidedBy,
		&l.DecidedAt,
		&l.RejectionReason,
		&l.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.LeaveRequest{}, employee.ErrLeaveNotFound
	}
	if err != nil {
		return employee.LeaveRequest{}, err
	}
	return l, nil
}

// Create implements employee.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l employee.LeaveRequest) (employee.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, employee_id, start_date, end_date, reason, status, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW())
		RETURNING ` + leaveColumns

	return scanLeave(q.QueryRow(ctx, query,
		l.EmployeeID, l.StartDate, l.EndDate, l.Reason, string(l.Status)))
}

// GetByID implements employee.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (employee.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id = $1`
	return scanLeave(q.QueryRow(ctx, query, id))
}

// ListByEmployee implements employee.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]employee.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+leaveColumns+` FROM leave_requests WHERE employee_id = $1 ORDER BY start_date DESC`,
		employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []employee.LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// ListPending implements employee.LeaveRepository.
func (r *leaveRepositoryImpl) ListPending(ctx context.Context, page, limit int) ([]employee.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM leave_requests WHERE status = $1`,
		string(employee.LeaveStatusPending)).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx,
		`SELECT `+leaveColumns+` FROM leave_requests WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		string(employee.LeaveStatusPending), limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leaves []employee.LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, 0, err
		}
		leaves = append(leaves, l)
	}
	return leaves, total, rows.Err()
}

// UpdateDecision implements employee.LeaveRepository. Only pending requests
// can be decided; a second decision hits zero rows.
func (r *leaveRepositoryImpl) UpdateDecision(ctx context.Context, l employee.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $1, decided_by = $2, decided_at = $3, rejection_reason = $4
		WHERE id = $5 AND status = $6`,
		string(l.Status), l.DecidedBy, l.DecidedAt, l.RejectionReason,
		l.ID, string(employee.LeaveStatusPending))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrLeaveAlreadyProcessed
	}
	return nil
}

// HasOverlap implements employee.LeaveRepository. Rejected requests do not
// block new ones.
func (r *leaveRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var overlap bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND status != $2
			AND start_date <= $3 AND end_date >= $4
		)`,
		employeeID, string(employee.LeaveStatusRejected), end, start).Scan(&overlap)
	if err != nil {
		return false, err
	}
	return overlap, nil
}

type loanRepositoryImpl struct {
	db *database.DB
}

func NewLoanRepository(db *database.DB) employee.LoanRepository {
	return &loanRepositoryImpl{db: db}
}

const loanColumns = `id, employee_id, amount, installments, status, decided_by, decided_at, created_at`

func scanLoan(row pgx.Row) (employee.Loan, error) {
	var l employee.Loan
	err := row.Scan(
		&l.ID,
		&l.EmployeeID,
		&l.Amount,
		&l.Installments,
		&l.Status,
		&l.DecidedBy,
		&l.DecidedAt,
		&l.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Loan{}, employee.ErrLoanNotFound
	}
	if err != nil {
		return employee.Loan{}, err
	}
	return l, nil
}

// Create implements employee.LoanRepository.
func (r *loanRepositoryImpl) Create(ctx context.Context, l employee.Loan) (employee.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO loans (id, employee_id, amount, installments, status, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW())
		RETURNING ` + loanColumns

	return scanLoan(q.QueryRow(ctx, query,
		l.EmployeeID, l.Amount, l.Installments, string(l.Status)))
}

// GetByID implements employee.LoanRepository.
func (r *loanRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	return scanLoan(q.QueryRow(ctx, query, id))
}

// ListByEmployee implements employee.LoanRepository.
func (r *loanRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]employee.Loan, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE employee_id = $1 ORDER BY created_at DESC`,
		employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []employee.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// ListPending implements employee.LoanRepository.
func (r *loanRepositoryImpl) ListPending(ctx context.Context, page, limit int) ([]employee.Loan, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM loans WHERE status = $1`,
		string(employee.LoanStatusPending)).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		string(employee.LoanStatusPending), limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var loans []employee.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, 0, err
		}
		loans = append(loans, l)
	}
	return loans, total, rows.Err()
}

// UpdateDecision implements employee.LoanRepository.
func (r *loanRepositoryImpl) UpdateDecision(ctx context.Context, l employee.Loan) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE loans SET status = $1, decided_by = $2, decided_at = $3
		WHERE id = $4 AND status = $5`,
		string(l.Status), l.DecidedBy, l.DecidedAt,
		l.ID, string(employee.LoanStatusPending))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrLoanAlreadyProcessed
	}
	return nil
}
