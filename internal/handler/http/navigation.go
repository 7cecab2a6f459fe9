package http

import (
	"net/http"

	"github.com/gestionpro/erp-backend-go/internal/domain/navigation"
	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
	"github.com/gestionpro/erp-backend-go/internal/pkg/authctx"
)

type NavigationHandler interface {
	GetNavigation(w http.ResponseWriter, r *http.Request)
}

type NavigationHandlerImpl struct{}

func NewNavigationHandler() NavigationHandler {
	return &NavigationHandlerImpl{}
}

// GetNavigation returns the menu tree pruned to the session's permissions.
// The client renders it as-is and never sees entries it cannot open.
func (h *NavigationHandlerImpl) GetNavigation(w http.ResponseWriter, r *http.Request) {
	session, ok := authctx.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	response.Success(w, navigation.Filter(navigation.Tree(), session))
}
