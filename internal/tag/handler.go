package tag

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

// GET /api/tags
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.GetAll(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch tags")
		return
	}

	utils.WriteJSON(w, http.StatusOK, tags)
}

// POST /api/tags
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateTagInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	t, err := h.svc.Create(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyName):
			utils.WriteError(w, http.StatusBadRequest, "Name is required")
		case errors.Is(err, ErrNameTooLong):
			utils.WriteError(w, http.StatusBadRequest, "Name must be 50 characters or less")
		case errors.Is(err, ErrDuplicate):
			utils.WriteError(w, http.StatusConflict, "Tag already exists")
		default:
			utils.WriteError(w, http.StatusInternalServerError, "Failed to create tag")
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, t)
}

// POST /api/todos/{todoID}/tags
func (h *Handler) AddToTodo(w http.ResponseWriter, r *http.Request) {
	todoID, err := parseID(chi.URLParam(r, "todoID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	var in AttachTagInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "tag_id is required and must be a number")
		return
	}
	if in.TagID == 0 {
		utils.WriteError(w, http.StatusBadRequest, "tag_id is required and must be a number")
		return
	}

	tags, err := h.svc.AddToTodo(r.Context(), todoID, in.TagID)
	if err != nil {
		switch {
		case errors.Is(err, ErrTodoNotFound):
			utils.WriteError(w, http.StatusNotFound, "Todo not found")
		case errors.Is(err, ErrNotFound):
			utils.WriteError(w, http.StatusNotFound, "Tag not found")
		default:
			utils.WriteError(w, http.StatusInternalServerError, "Failed to add tag to todo")
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, tags)
}

// DELETE /api/todos/{todoID}/tags/{tagID}
func (h *Handler) RemoveFromTodo(w http.ResponseWriter, r *http.Request) {
	todoID, err := parseID(chi.URLParam(r, "todoID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	tagID, err := parseID(chi.URLParam(r, "tagID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid tag id")
		return
	}

	if err := h.svc.RemoveFromTodo(r.Context(), todoID, tagID); err != nil {
		if errors.Is(err, ErrNotAssociated) {
			utils.WriteError(w, http.StatusNotFound, "Tag not associated with this todo")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to remove tag from todo")
		return
	}

	utils.WriteJSON(w, http.StatusNoContent, nil)
}

func parseID(s string) (int64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(s, 10, 64)
}
