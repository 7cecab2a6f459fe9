package postgresql

import (
	"context"
	"fmt"

	"github.com/gestionpro/erp-backend-go/internal/domain/invoice"
	"github.com/gestionpro/erp-backend-go/internal/domain/mission"
	"github.com/gestionpro/erp-backend-go/internal/domain/report"
	"github.com/gestionpro/erp-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// DashboardSummary implements report.ReportRepository.
func (r *reportRepositoryImpl) DashboardSummary(ctx context.Context) (report.DashboardSummary, error) {
	q := GetQuerier(ctx, r.db)

	summary := report.DashboardSummary{
		QuotesByStatus: map[string]int64{},
	}

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM quotes GROUP BY status`)
	if err != nil {
		return report.DashboardSummary{}, err
	}
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return report.DashboardSummary{}, err
		}
		summary.QuotesByStatus[status] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return report.DashboardSummary{}, err
	}

	err = q.QueryRow(ctx, `
		SELECT COUNT(*) FROM quotes
		WHERE status NOT IN ('ACCEPTED_BY_CLIENT', 'REJECTED_BY_CLIENT', 'REJECTED_BY_SERVICE_MANAGER', 'REJECTED_BY_DG', 'EXPIRED')`,
	).Scan(&summary.OpenQuotes)
	if err != nil {
		return report.DashboardSummary{}, err
	}

	var revenue decimal.Decimal
	err = q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM invoice_payments
		WHERE date_trunc('year', paid_at) = date_trunc('year', NOW())`,
	).Scan(&revenue)
	if err != nil {
		return report.DashboardSummary{}, err
	}
	summary.RevenueThisYear = revenue.String()

	var outstanding decimal.Decimal
	err = q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount - paid_amount), 0) FROM invoices
		WHERE status NOT IN ($1, $2)`,
		string(invoice.StatusPaid), string(invoice.StatusCancelled),
	).Scan(&outstanding)
	if err != nil {
		return report.DashboardSummary{}, err
	}
	summary.OutstandingBalance = outstanding.String()

	err = q.QueryRow(ctx, `SELECT COUNT(*) FROM missions WHERE status = $1`,
		string(mission.StatusInProgress)).Scan(&summary.MissionsInProgress)
	if err != nil {
		return report.DashboardSummary{}, err
	}

	err = q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_active = true`).Scan(&summary.ActiveEmployees)
	if err != nil {
		return report.DashboardSummary{}, err
	}

	err = q.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE is_prospect = true`).Scan(&summary.Prospects)
	if err != nil {
		return report.DashboardSummary{}, err
	}

	return summary, nil
}

// MonthlyRevenue implements report.ReportRepository. Months with no payments
// are included at zero so charts stay twelve columns wide.
func (r *reportRepositoryImpl) MonthlyRevenue(ctx context.Context, year int) ([]report.MonthlyRevenue, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT EXTRACT(MONTH FROM paid_at)::int, COALESCE(SUM(amount), 0)
		FROM invoice_payments
		WHERE EXTRACT(YEAR FROM paid_at) = $1
		GROUP BY 1 ORDER BY 1`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byMonth := map[int]decimal.Decimal{}
	for rows.Next() {
		var month int
		var revenue decimal.Decimal
		if err := rows.Scan(&month, &revenue); err != nil {
			return nil, err
		}
		byMonth[month] = revenue
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]report.MonthlyRevenue, 0, 12)
	for month := 1; month <= 12; month++ {
		revenue, ok := byMonth[month]
		if !ok {
			revenue = decimal.Zero
		}
		result = append(result, report.MonthlyRevenue{
			Month:   fmt.Sprintf("%d-%02d", year, month),
			Revenue: revenue.String(),
		})
	}
	return result, nil
}
