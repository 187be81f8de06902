package export

import (
	"context"

	"github.com/aekeus/ralph-test/internal/subtask"
)

type Service interface {
	ExportJSON(ctx context.Context) ([]TodoWithSubtasks, error)
	ExportCSV(ctx context.Context) (string, error)
}

type service struct {
	repo ExportRepository
}

func NewService(repo ExportRepository) Service {
	return &service{repo: repo}
}

func (s *service) ExportJSON(ctx context.Context) ([]TodoWithSubtasks, error) {
	todos, err := s.repo.TodosOrdered(ctx)
	if err != nil {
		return nil, err
	}

	subtasks, err := s.repo.SubtasksOrdered(ctx)
	if err != nil {
		return nil, err
	}

	byTodo := make(map[int64][]subtask.Subtask)
	for _, sub := range subtasks {
		byTodo[sub.TodoID] = append(byTodo[sub.TodoID], sub)
	}

	out := make([]TodoWithSubtasks, 0, len(todos))
	for _, t := range todos {
		subs := byTodo[t.ID]
		if subs == nil {
			// todo ไม่มี subtask ต้องได้ [] ไม่ใช่ null
			subs = []subtask.Subtask{}
		}
		out = append(out, TodoWithSubtasks{Todo: t, Subtasks: subs})
	}

	return out, nil
}

func (s *service) ExportCSV(ctx context.Context) (string, error) {
	rows, err := s.repo.JoinedRows(ctx)
	if err != nil {
		return "", err
	}

	return encodeCSV(rows), nil
}
