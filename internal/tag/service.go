package tag

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptyName   = errors.New("name is required")
	ErrNameTooLong = errors.New("name must be 50 characters or less")
)

const defaultColor = "#6366f1"

type Service interface {
	Create(ctx context.Context, in CreateTagInput) (*Tag, error)
	GetAll(ctx context.Context) ([]Tag, error)
	AddToTodo(ctx context.Context, todoID, tagID int64) ([]Tag, error)
	RemoveFromTodo(ctx context.Context, todoID, tagID int64) error
}

type service struct {
	repo TagRepository
}

func NewService(repo TagRepository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, in CreateTagInput) (*Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	// นับเป็นตัวอักษร ไม่ใช่ byte (ชื่อภาษาไทยตัวละ 3 byte)
	if utf8.RuneCountInString(name) > 50 {
		return nil, ErrNameTooLong
	}

	color := in.Color
	if color == "" {
		color = defaultColor
	}

	t := &Tag{
		Name:  name,
		Color: color,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *service) GetAll(ctx context.Context) ([]Tag, error) {
	tags, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []Tag{}
	}
	return tags, nil
}

// AddToTodo ผูก tag เข้ากับ todo (idempotent) แล้วคืน tag ทั้งหมดของ todo นั้น
func (s *service) AddToTodo(ctx context.Context, todoID, tagID int64) ([]Tag, error) {
	exists, err := s.repo.TodoExists(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTodoNotFound
	}

	// เช็คว่า tag มีจริงก่อนผูก
	if _, err := s.repo.GetByID(ctx, tagID); err != nil {
		return nil, err
	}

	if err := s.repo.Attach(ctx, todoID, tagID); err != nil {
		return nil, err
	}

	tags, err := s.repo.ListByTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []Tag{}
	}
	return tags, nil
}

func (s *service) RemoveFromTodo(ctx context.Context, todoID, tagID int64) error {
	return s.repo.Detach(ctx, todoID, tagID)
}
