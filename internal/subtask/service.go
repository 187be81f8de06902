package subtask

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyTitle = errors.New("title is required")

type Service interface {
	ListSubtasks(ctx context.Context, todoID int64) ([]Subtask, error)
	CreateSubtask(ctx context.Context, todoID int64, in CreateSubtaskInput) (*Subtask, error)
	UpdateSubtask(ctx context.Context, todoID, id int64, in UpdateSubtaskInput) (*Subtask, error)
	DeleteSubtask(ctx context.Context, todoID, id int64) error
}

type service struct {
	repo SubtaskRepository
}

func NewService(repo SubtaskRepository) Service {
	return &service{repo: repo}
}

func (s *service) ListSubtasks(ctx context.Context, todoID int64) ([]Subtask, error) {
	exists, err := s.repo.TodoExists(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTodoNotFound
	}

	subtasks, err := s.repo.ListByTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if subtasks == nil {
		subtasks = []Subtask{}
	}
	return subtasks, nil
}

func (s *service) CreateSubtask(ctx context.Context, todoID int64, in CreateSubtaskInput) (*Subtask, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	exists, err := s.repo.TodoExists(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTodoNotFound
	}

	sub := &Subtask{
		TodoID: todoID,
		Title:  title,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *service) UpdateSubtask(ctx context.Context, todoID, id int64, in UpdateSubtaskInput) (*Subtask, error) {
	// merge กับของเดิม field ไหนไม่ส่งมาคงค่าเดิม
	existing, err := s.repo.GetByID(ctx, todoID, id)
	if err != nil {
		return nil, err
	}

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

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *service) DeleteSubtask(ctx context.Context, todoID, id int64) error {
	return s.repo.Delete(ctx, todoID, id)
}
