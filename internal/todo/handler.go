package todo

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

// GET /api/todos
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filters{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Tags:     q["tag"],
		Sort:     q.Get("sort"),
	}

	todos, err := h.svc.ListTodos(r.Context(), f)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch todos")
		return
	}

	utils.WriteJSON(w, http.StatusOK, todos)
}

// GET /api/todos/{todoID}
func (h *Handler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "todoID")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	t, err := h.svc.GetTodo(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Todo not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch todo")
		return
	}

	utils.WriteJSON(w, http.StatusOK, t)
}

// POST /api/todos
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var in CreateTodoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Title is required")
		return
	}

	t, err := h.svc.CreateTodo(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyTitle):
			utils.WriteError(w, http.StatusBadRequest, "Title is required")
		case errors.Is(err, ErrInvalidPriority):
			utils.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			utils.WriteError(w, http.StatusInternalServerError, "Failed to create todo")
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, t)
}

// PUT /api/todos/{todoID}
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "todoID")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var in UpdateTodoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	t, err := h.svc.UpdateTodo(r.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyTitle), errors.Is(err, ErrInvalidPriority):
			utils.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			utils.WriteError(w, http.StatusNotFound, "Todo not found")
		default:
			utils.WriteError(w, http.StatusInternalServerError, "Failed to update todo")
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, t)
}

// DELETE /api/todos/{todoID}
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "todoID")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.DeleteTodo(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Todo not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete todo")
		return
	}

	utils.WriteJSON(w, http.StatusNoContent, nil)
}

// PUT /api/todos/reorder
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var in ReorderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.svc.Reorder(r.Context(), in); err != nil {
		switch {
		case errors.Is(err, ErrEmptyOrders), errors.Is(err, ErrInvalidOrder):
			utils.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			utils.WriteError(w, http.StatusInternalServerError, "Failed to reorder todos")
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GET /api/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	utils.WriteJSON(w, http.StatusOK, stats)
}

func idParam(r *http.Request, name string) (int64, error) {
	s := chi.URLParam(r, name)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(s, 10, 64)
}
