package todo

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrEmptyTitle      = errors.New("title is required")
	ErrInvalidPriority = errors.New("priority must be low, medium or high")
	ErrEmptyOrders     = errors.New("orders must be a non-empty array")
	ErrInvalidOrder    = errors.New("every order entry needs an id and a position")
)

// Service คือ business logic layer
type Service interface {
	CreateTodo(ctx context.Context, in CreateTodoInput) (*Todo, error)
	GetTodo(ctx context.Context, id int64) (*Todo, error)
	ListTodos(ctx context.Context, f Filters) ([]Todo, error)
	UpdateTodo(ctx context.Context, id int64, in UpdateTodoInput) (*Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
	Reorder(ctx context.Context, in ReorderInput) error
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo TodoRepository
}

func NewService(repo TodoRepository) Service {
	return &service{repo: repo}
}

// ===== Create =====

func (s *service) CreateTodo(ctx context.Context, in CreateTodoInput) (*Todo, error) {
	// title required (trim ก่อนเช็ค กัน whitespace ล้วน)
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !validPriority(priority) {
		return nil, ErrInvalidPriority
	}

	t := &Todo{
		Title:     title,
		Completed: false,
		DueDate:   in.DueDate, // nil OK
		Priority:  priority,
		Notes:     in.Notes,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// ===== Get / List =====

func (s *service) GetTodo(ctx context.Context, id int64) (*Todo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListTodos(ctx context.Context, f Filters) ([]Todo, error) {
	todos, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	// "ไม่เจอ" ไม่ใช่ error ต้องได้ [] ไม่ใช่ null
	if todos == nil {
		todos = []Todo{}
	}
	return todos, nil
}

// ===== Update =====

func (s *service) UpdateTodo(ctx context.Context, id int64, in UpdateTodoInput) (*Todo, error) {
	// ดึงข้อมูลเดิมมาก่อน แล้ว merge เฉพาะ field ที่ส่งมา
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// title (optional แต่ถ้าส่งมา ห้ามค่าว่าง)
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		existing.Title = title
	}

	if in.Completed != nil {
		existing.Completed = *in.Completed
	}

	if in.DueDate != nil {
		existing.DueDate = in.DueDate
	}

	if in.Priority != nil {
		if !validPriority(*in.Priority) {
			return nil, ErrInvalidPriority
		}
		existing.Priority = *in.Priority
	}

	if in.Notes != nil {
		existing.Notes = in.Notes
	}

	if in.Position != nil {
		existing.Position = in.Position
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// ===== Delete =====

func (s *service) DeleteTodo(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ===== Reorder =====

func (s *service) Reorder(ctx context.Context, in ReorderInput) error {
	if len(in.Orders) == 0 {
		return ErrEmptyOrders
	}

	// ทุก entry ต้องมีทั้ง id และ position ครบ ขาดอันใดอันหนึ่ง = 400
	orders := make([]OrderEntry, len(in.Orders))
	for i, o := range in.Orders {
		if o.ID == nil || o.Position == nil || *o.ID <= 0 {
			return ErrInvalidOrder
		}
		orders[i] = OrderEntry{ID: *o.ID, Position: *o.Position}
	}

	return s.repo.Reorder(ctx, orders)
}

// ===== Stats =====

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
