package subtask

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aekeus/ralph-test/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// GET /api/todos/{todoID}/subtasks
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	todoID, err := idParam(r, "todoID")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	subtasks, err := h.svc.ListSubtasks(r.Context(), todoID)
	if err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Todo not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch subtasks")
		return
	}

	utils.WriteJSON(w, http.StatusOK, subtasks)
}

// POST /api/todos/{todoID}/subtasks
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	todoID, err := idParam(r, "todoID")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	var in CreateSubtaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Title is required")
		return
	}

	sub, err := h.svc.CreateSubtask(r.Context(), todoID, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyTitle):
			utils.WriteError(w, http.StatusBadRequest, "Title is required")
		case errors.Is(err, ErrTodoNotFound):
			utils.WriteError(w, http.StatusNotFound, "Todo not found")
		default:
			utils.WriteError(w, http.StatusInternalServerError, "Failed to create subtask")
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, sub)
}

// PUT /api/todos/{todoID}/subtasks/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	todoID, err := idParam(r, "todoID")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	id, err := idParam(r, "id")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var in UpdateSubtaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sub, err := h.svc.UpdateSubtask(r.Context(), todoID, id, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyTitle):
			utils.WriteError(w, http.StatusBadRequest, "Title is required")
		case errors.Is(err, ErrNotFound):
			utils.WriteError(w, http.StatusNotFound, "Subtask not found")
		default:
			utils.WriteError(w, http.StatusInternalServerError, "Failed to update subtask")
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, sub)
}

// DELETE /api/todos/{todoID}/subtasks/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	todoID, err := idParam(r, "todoID")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	id, err := idParam(r, "id")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.DeleteSubtask(r.Context(), todoID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Subtask not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete subtask")
		return
	}

	utils.WriteJSON(w, http.StatusNoContent, nil)
}

func idParam(r *http.Request, name string) (int64, error) {
	s := chi.URLParam(r, name)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(s, 10, 64)
}
