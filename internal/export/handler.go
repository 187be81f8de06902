package export

import (
	"net/http"

	"github.com/aekeus/ralph-test/pkg/utils"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// GET /api/export/json
func (h *Handler) JSON(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.ExportJSON(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to export todos")
		return
	}

	utils.WriteJSON(w, http.StatusOK, todos)
}

// GET /api/export/csv
func (h *Handler) CSV(w http.ResponseWriter, r *http.Request) {
	csv, err := h.svc.ExportCSV(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to export todos as CSV")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="todos-export.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}
