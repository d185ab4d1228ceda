package handler

import (
	"net/http"

	"github.com/chetan-code/missioncontrol/internal/service"
)

type DashboardHandler struct {
	dashboard service.DashboardService
	identity  service.IdentityService
}

func NewDashboardHandler(dashboard service.DashboardService, identity service.IdentityService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, identity: identity}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboard.Summary(r.Context(), sessionFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Directory lists users for assignee pickers. Open to every signed-in user.
func (h *DashboardHandler) Directory(w http.ResponseWriter, r *http.Request) {
	users, err := h.identity.Directory(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
