package http

import (
	"net/http"
	"strconv"

	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
)

// parsePagination reads page and limit from the query string, clamping to
// sane defaults. Limit caps at 100 so a client cannot pull whole tables.
func parsePagination(r *http.Request) (page, limit int) {
	page, limit = 1, 20

	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func paginationMeta(page, limit int, total int64) *response.Meta {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
