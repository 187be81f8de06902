package export

import (
	"context"

	"github.com/aekeus/ralph-test/internal/subtask"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExportRepository interface {
	TodosOrdered(ctx context.Context) ([]Todo, error)
	SubtasksOrdered(ctx context.Context) ([]subtask.Subtask, error)
	JoinedRows(ctx context.Context) ([]Row, error)
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) ExportRepository {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) TodosOrdered(ctx context.Context) ([]Todo, error) {
	query := `
		SELECT id, title, completed, due_date, priority, notes, position, created_at, updated_at
		FROM todos
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []Todo
	for rows.Next() {
		var t Todo
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Completed,
			&t.DueDate,
			&t.Priority,
			&t.Notes,
			&t.Position,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

func (r *PostgresRepo) SubtasksOrdered(ctx context.Context) ([]subtask.Subtask, error) {
	query := `
		SELECT id, todo_id, title, completed, created_at, updated_at
		FROM subtasks
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subtasks []subtask.Subtask
	for rows.Next() {
		var s subtask.Subtask
		if err := rows.Scan(
			&s.ID,
			&s.TodoID,
			&s.Title,
			&s.Completed,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		subtasks = append(subtasks, s)
	}

	return subtasks, rows.Err()
}

func (r *PostgresRepo) JoinedRows(ctx context.Context) ([]Row, error) {
	query := `
		SELECT
			t.id AS todo_id,
			t.title AS todo_title,
			t.completed AS todo_completed,
			t.due_date AS todo_due_date,
			t.priority AS todo_priority,
			s.id AS subtask_id,
			s.title AS subtask_title,
			s.completed AS subtask_completed
		FROM todos t
		LEFT JOIN subtasks s ON s.todo_id = t.id
		ORDER BY t.id ASC, s.id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.TodoID,
			&row.TodoTitle,
			&row.TodoCompleted,
			&row.TodoDueDate,
			&row.TodoPriority,
			&row.SubtaskID,
			&row.SubtaskTitle,
			&row.SubtaskCompleted,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}

	return out, rows.Err()
}
