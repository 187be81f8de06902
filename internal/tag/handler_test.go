package tag

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T, todoIDs ...int64) *chi.Mux {
	t.Helper()

	h := NewHandler(NewService(newFakeRepo(todoIDs...)))

	r := chi.NewRouter()
	r.Get("/api/tags", h.List)
	r.Post("/api/tags", h.Create)
	r.Post("/api/todos/{todoID}/tags", h.AddToTodo)
	r.Delete("/api/todos/{todoID}/tags/{tagID}", h.RemoveFromTodo)

	return r
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

func TestCreateTagHandlerConflict(t *testing.T) {
	r := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/api/tags", `{"name":"work"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d, body: %s", rec.Code, rec.Body)
	}

	rec = doRequest(t, r, http.MethodPost, "/api/tags", `{"name":"work"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate: status = %d want 409", rec.Code)
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Tag already exists" {
		t.Errorf("error message = %q", body["error"])
	}
}

func TestCreateTagHandlerValidation(t *testing.T) {
	r := newTestRouter(t)

	for _, body := range []string{`{}`, `{"name":"  "}`, `{"name":` + `"` + strings.Repeat("a", 51) + `"}`} {
		rec := doRequest(t, r, http.MethodPost, "/api/tags", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d want 400", body, rec.Code)
		}
	}
}

func TestListTagsHandlerEmpty(t *testing.T) {
	r := newTestRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/api/tags", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty list body = %q, want []", got)
	}
}

func TestAddTagToTodoHandler(t *testing.T) {
	r := newTestRouter(t, 1)

	doRequest(t, r, http.MethodPost, "/api/tags", `{"name":"work"}`)

	rec := doRequest(t, r, http.MethodPost, "/api/todos/1/tags", `{"tag_id":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body)
	}

	var tags []Tag
	json.Unmarshal(rec.Body.Bytes(), &tags)
	if len(tags) != 1 || tags[0].Name != "work" {
		t.Errorf("expected full tag set in response, got %s", rec.Body)
	}
}

func TestAddTagToTodoHandlerValidation(t *testing.T) {
	r := newTestRouter(t, 1)

	doRequest(t, r, http.MethodPost, "/api/tags", `{"name":"work"}`)

	// tag_id ไม่ใช่ตัวเลข / ไม่ส่งมา = 400
	for _, body := range []string{`{}`, `{"tag_id":"one"}`} {
		rec := doRequest(t, r, http.MethodPost, "/api/todos/1/tags", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d want 400", body, rec.Code)
		}
	}

	rec := doRequest(t, r, http.MethodPost, "/api/todos/99/tags", `{"tag_id":1}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing todo: status = %d want 404", rec.Code)
	}
}

func TestRemoveTagFromTodoHandler(t *testing.T) {
	r := newTestRouter(t, 1)

	doRequest(t, r, http.MethodPost, "/api/tags", `{"name":"work"}`)
	doRequest(t, r, http.MethodPost, "/api/todos/1/tags", `{"tag_id":1}`)

	rec := doRequest(t, r, http.MethodDelete, "/api/todos/1/tags/1", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d want 204", rec.Code)
	}

	rec = doRequest(t, r, http.MethodDelete, "/api/todos/1/tags/1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("no association: status = %d want 404", rec.Code)
	}
}
