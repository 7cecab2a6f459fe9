package report

import (
	"context"

	"github.com/gestionpro/erp-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
}

func NewReportService(reportRepo report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{reportRepo: reportRepo}
}

// Dashboard implements report.ReportService.
func (s *ReportServiceImpl) Dashboard(ctx context.Context) (report.DashboardSummary, error) {
	return s.reportRepo.DashboardSummary(ctx)
}

// Revenue implements report.ReportService.
func (s *ReportServiceImpl) Revenue(ctx context.Context, year int) ([]report.MonthlyRevenue, error) {
	if year < 2000 || year > 2100 {
		return nil, report.ErrInvalidYear
	}
	return s.reportRepo.MonthlyRevenue(ctx, year)
}
