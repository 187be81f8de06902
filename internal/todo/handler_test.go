package todo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// newTestRouter ต่อ handler จริงกับ service จริงบน fake repo
func newTestRouter(t *testing.T) (*chi.Mux, *fakeRepo) {
	t.Helper()

	repo := newFakeRepo()
	h := NewHandler(NewService(repo))

	r := chi.NewRouter()
	r.Route("/api/todos", func(r chi.Router) {
		r.Get("/", h.ListTodos)
		r.Post("/", h.CreateTodo)
		r.Put("/reorder", h.Reorder)
		r.Get("/{todoID}", h.GetTodo)
		r.Put("/{todoID}", h.UpdateTodo)
		r.Delete("/{todoID}", h.DeleteTodo)
	})
	r.Get("/api/stats", h.Stats)

	return r, repo
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateTodoHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/api/todos", `{"title":"  write tests  "}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d want 201, body: %s", rec.Code, rec.Body)
	}

	var created Todo
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected generated id")
	}
	if created.Title != "write tests" {
		t.Errorf("title = %q, want trimmed", created.Title)
	}
	if created.Priority != PriorityMedium {
		t.Errorf("priority = %q, want medium", created.Priority)
	}
}

func TestCreateTodoHandlerValidation(t *testing.T) {
	r, repo := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{}`},
		{"blank title", `{"title":"   "}`},
		{"non-string title", `{"title":123}`},
		{"null title", `{"title":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, r, http.MethodPost, "/api/todos", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d want 400, body: %s", rec.Code, rec.Body)
			}

			var body map[string]string
			json.Unmarshal(rec.Body.Bytes(), &body)
			if body["error"] == "" {
				t.Errorf("expected {error: ...} body, got %s", rec.Body)
			}
		})
	}

	if len(repo.todos) != 0 {
		t.Errorf("no row must be persisted, got %d", len(repo.todos))
	}
}

func TestListTodosHandlerEmpty(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/api/todos", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d want 200", rec.Code)
	}

	// ว่างต้องได้ [] ไม่ใช่ null
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty list body = %q, want []", got)
	}
}

func TestListTodosHandlerParsesFilters(t *testing.T) {
	repo := newFakeRepo()
	var seen Filters
	h := NewHandler(&filterSpyService{Service: NewService(repo), seen: &seen})

	r := chi.NewRouter()
	r.Get("/api/todos", h.ListTodos)

	doRequest(t, r, http.MethodGet, "/api/todos?search=milk&status=active&priority=high&tag=work&tag=home&sort=due_date", "")

	if seen.Search != "milk" || seen.Status != "active" || seen.Priority != "high" || seen.Sort != "due_date" {
		t.Errorf("filters not parsed: %+v", seen)
	}
	if len(seen.Tags) != 2 || seen.Tags[0] != "work" || seen.Tags[1] != "home" {
		t.Errorf("expected both tag params, got %v", seen.Tags)
	}
}

type filterSpyService struct {
	Service
	seen *Filters
}

func (s *filterSpyService) ListTodos(ctx context.Context, f Filters) ([]Todo, error) {
	*s.seen = f
	return s.Service.ListTodos(ctx, f)
}

func TestGetTodoHandlerNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/api/todos/99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d want 404", rec.Code)
	}
}

func TestUpdateTodoHandlerRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/api/todos", `{"title":"roundtrip"}`)
	var created Todo
	json.Unmarshal(rec.Body.Bytes(), &created)

	rec = doRequest(t, r, http.MethodPut, "/api/todos/1", `{"priority":"high"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body: %s", rec.Code, rec.Body)
	}

	rec = doRequest(t, r, http.MethodGet, "/api/todos/1", "")
	var got Todo
	json.Unmarshal(rec.Body.Bytes(), &got)

	if got.Priority != PriorityHigh {
		t.Errorf("priority = %q, want high", got.Priority)
	}
	if got.Title != created.Title || got.Completed != created.Completed {
		t.Errorf("other fields must be unchanged: %+v", got)
	}
}

func TestDeleteTodoHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	doRequest(t, r, http.MethodPost, "/api/todos", `{"title":"to delete"}`)

	rec := doRequest(t, r, http.MethodDelete, "/api/todos/1", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d want 204", rec.Code)
	}

	rec = doRequest(t, r, http.MethodDelete, "/api/todos/1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d want 404", rec.Code)
	}
}

func TestReorderHandler(t *testing.T) {
	r, repo := newTestRouter(t)

	doRequest(t, r, http.MethodPost, "/api/todos", `{"title":"a"}`)
	doRequest(t, r, http.MethodPost, "/api/todos", `{"title":"b"}`)

	rec := doRequest(t, r, http.MethodPut, "/api/todos/reorder", `{"orders":[{"id":2,"position":1},{"id":1,"position":2}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body)
	}

	var body map[string]bool
	json.Unmarshal(rec.Body.Bytes(), &body)
	if !body["success"] {
		t.Errorf("expected {success:true}, got %s", rec.Body)
	}

	if *repo.todos[2].Position != 1 || *repo.todos[1].Position != 2 {
		t.Errorf("positions not applied: %v %v", repo.todos[1].Position, repo.todos[2].Position)
	}
}

func TestReorderHandlerValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	bodies := []string{
		`{}`,
		`{"orders":[]}`,
		`{"orders":[{"id":"x","position":1}]}`,
		`{"orders":[{"id":5}]}`,       // ไม่มี position
		`{"orders":[{"position":1}]}`, // ไม่มี id
	}
	for _, body := range bodies {
		rec := doRequest(t, r, http.MethodPut, "/api/todos/reorder", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d want 400", body, rec.Code)
		}
	}
}

func TestStatsHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	doRequest(t, r, http.MethodPost, "/api/todos", `{"title":"one","priority":"high"}`)

	rec := doRequest(t, r, http.MethodGet, "/api/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var stats Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Total != 1 || stats.ByPriority.High != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
