package report

import "context"

type ReportRepository interface {
	DashboardSummary(ctx context.Context) (DashboardSummary, error)
	MonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenue, error)
}
