package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aekeus/ralph-test/internal/export"
	"github.com/aekeus/ralph-test/internal/subtask"
	"github.com/aekeus/ralph-test/internal/tag"
	"github.com/aekeus/ralph-test/internal/todo"
)

// APIError คือ error body จาก server ({"error": "..."}) พร้อม status code
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client เรียก REST API ฝั่ง server หนึ่ง method ต่อหนึ่ง endpoint
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ================== Todos ==================

func (c *Client) ListTodos(ctx context.Context, f todo.Filters) ([]todo.Todo, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Priority != "" {
		q.Set("priority", f.Priority)
	}
	for _, t := range f.Tags {
		q.Add("tag", t)
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}

	path := "/api/todos"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var todos []todo.Todo
	if err := c.do(ctx, http.MethodGet, path, nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) GetTodo(ctx context.Context, id int64) (*todo.Todo, error) {
	var t todo.Todo
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/todos/%d", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) CreateTodo(ctx context.Context, in todo.CreateTodoInput) (*todo.Todo, error) {
	var t todo.Todo
	if err := c.do(ctx, http.MethodPost, "/api/todos", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTodo(ctx context.Context, id int64, in todo.UpdateTodoInput) (*todo.Todo, error) {
	var t todo.Todo
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/todos/%d", id), in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/todos/%d", id), nil, nil)
}

func (c *Client) ReorderTodos(ctx context.Context, orders []todo.OrderEntry) error {
	in := todo.ReorderInput{Orders: make([]todo.OrderEntryInput, len(orders))}
	for i := range orders {
		in.Orders[i] = todo.OrderEntryInput{ID: &orders[i].ID, Position: &orders[i].Position}
	}
	return c.do(ctx, http.MethodPut, "/api/todos/reorder", in, nil)
}

func (c *Client) Stats(ctx context.Context) (*todo.Stats, error) {
	var s todo.Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ================== Subtasks ==================

func (c *Client) ListSubtasks(ctx context.Context, todoID int64) ([]subtask.Subtask, error) {
	var subs []subtask.Subtask
	path := fmt.Sprintf("/api/todos/%d/subtasks", todoID)
	if err := c.do(ctx, http.MethodGet, path, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c *Client) CreateSubtask(ctx context.Context, todoID int64, title string) (*subtask.Subtask, error) {
	var sub subtask.Subtask
	path := fmt.Sprintf("/api/todos/%d/subtasks", todoID)
	in := subtask.CreateSubtaskInput{Title: title}
	if err := c.do(ctx, http.MethodPost, path, in, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) UpdateSubtask(ctx context.Context, todoID, id int64, in subtask.UpdateSubtaskInput) (*subtask.Subtask, error) {
	var sub subtask.Subtask
	path := fmt.Sprintf("/api/todos/%d/subtasks/%d", todoID, id)
	if err := c.do(ctx, http.MethodPut, path, in, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) DeleteSubtask(ctx context.Context, todoID, id int64) error {
	path := fmt.Sprintf("/api/todos/%d/subtasks/%d", todoID, id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ================== Tags ==================

func (c *Client) ListTags(ctx context.Context) ([]tag.Tag, error) {
	var tags []tag.Tag
	if err := c.do(ctx, http.MethodGet, "/api/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) CreateTag(ctx context.Context, name, color string) (*tag.Tag, error) {
	var t tag.Tag
	in := tag.CreateTagInput{Name: name, Color: color}
	if err := c.do(ctx, http.MethodPost, "/api/tags", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// AddTagToTodo คืน tag ทั้งหมดของ todo หลังผูกแล้ว
func (c *Client) AddTagToTodo(ctx context.Context, todoID, tagID int64) ([]tag.Tag, error) {
	var tags []tag.Tag
	path := fmt.Sprintf("/api/todos/%d/tags", todoID)
	in := tag.AttachTagInput{TagID: tagID}
	if err := c.do(ctx, http.MethodPost, path, in, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) RemoveTagFromTodo(ctx context.Context, todoID, tagID int64) error {
	path := fmt.Sprintf("/api/todos/%d/tags/%d", todoID, tagID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ================== Export / Health ==================

func (c *Client) ExportJSON(ctx context.Context) ([]export.TodoWithSubtasks, error) {
	var todos []export.TodoWithSubtasks
	if err := c.do(ctx, http.MethodGet, "/api/export/json", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// ExportCSV คืนไฟล์ CSV ดิบ ๆ
func (c *Client) ExportCSV(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/export/csv", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// ================== ส่วนกลาง ==================

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
