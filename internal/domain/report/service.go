package report

import "context"

type ReportService interface {
	Dashboard(ctx context.Context) (DashboardSummary, error)
	Revenue(ctx context.Context, year int) ([]MonthlyRevenue, error)
}
