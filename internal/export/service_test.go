package export

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aekeus/ralph-test/internal/subtask"
)

type fakeRepo struct {
	todos    []Todo
	subtasks []subtask.Subtask
}

func (r *fakeRepo) TodosOrdered(_ context.Context) ([]Todo, error) {
	return r.todos, nil
}

func (r *fakeRepo) SubtasksOrdered(_ context.Context) ([]subtask.Subtask, error) {
	return r.subtasks, nil
}

func (r *fakeRepo) JoinedRows(_ context.Context) ([]Row, error) {
	var rows []Row
	for _, t := range r.todos {
		matched := false
		for _, s := range r.subtasks {
			if s.TodoID == t.ID {
				matched = true
				id, title, completed := s.ID, s.Title, s.Completed
				rows = append(rows, Row{
					TodoID: t.ID, TodoTitle: t.Title, TodoCompleted: t.Completed,
					TodoDueDate: t.DueDate, TodoPriority: t.Priority,
					SubtaskID: &id, SubtaskTitle: &title, SubtaskCompleted: &completed,
				})
			}
		}
		if !matched {
			rows = append(rows, Row{
				TodoID: t.ID, TodoTitle: t.Title, TodoCompleted: t.Completed,
				TodoDueDate: t.DueDate, TodoPriority: t.Priority,
			})
		}
	}
	return rows, nil
}

func TestExportJSONNestsSubtasks(t *testing.T) {
	repo := &fakeRepo{
		todos: []Todo{
			{ID: 1, Title: "with subs", Priority: "medium"},
			{ID: 2, Title: "alone", Priority: "low"},
		},
		subtasks: []subtask.Subtask{
			{ID: 10, TodoID: 1, Title: "a"},
			{ID: 11, TodoID: 1, Title: "b"},
		},
	}

	out, err := NewService(repo).ExportJSON(context.Background())
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(out))
	}
	if len(out[0].Subtasks) != 2 {
		t.Errorf("todo 1: expected 2 nested subtasks, got %d", len(out[0].Subtasks))
	}
	// todo ไม่มี subtask ต้อง serialize เป็น [] ไม่ใช่ null
	if out[1].Subtasks == nil {
		t.Error("todo 2: subtasks must be empty slice, not nil")
	}

	b, _ := json.Marshal(out[1])
	if !strings.Contains(string(b), `"subtasks":[]`) {
		t.Errorf("expected empty subtasks array in JSON, got %s", b)
	}
}

func TestCSVHandlerHeaders(t *testing.T) {
	repo := &fakeRepo{todos: []Todo{{ID: 1, Title: "x", Priority: "medium"}}}
	h := NewHandler(NewService(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/export/csv", nil)
	rec := httptest.NewRecorder()
	h.CSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="todos-export.csv"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "todo_id,") {
		t.Errorf("body must start with header row: %q", rec.Body.String())
	}
}

func TestJSONHandler(t *testing.T) {
	repo := &fakeRepo{todos: []Todo{{ID: 1, Title: "only", Priority: "high"}}}
	h := NewHandler(NewService(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/export/json", nil)
	rec := httptest.NewRecorder()
	h.JSON(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var out []TodoWithSubtasks
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Title != "only" {
		t.Errorf("unexpected payload: %s", rec.Body)
	}
}
