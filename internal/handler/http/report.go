package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/report"
	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
	GetRevenue(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// GetDashboard implements ReportHandler.
func (h *ReportHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.Dashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// GetRevenue implements ReportHandler. Defaults to the current year.
func (h *ReportHandlerImpl) GetRevenue(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "Invalid year", map[string]string{"year": y})
			return
		}
		year = parsed
	}

	months, err := h.reportService.Revenue(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, months)
}
