package subtask

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("subtask not found")
	ErrTodoNotFound = errors.New("todo not found")
)

// ทุก operation scope ด้วยคู่ (id, todo_id) เสมอ
// subtask ไม่มี lifecycle ของตัวเอง แยกจาก todo แม่ไม่ได้
type SubtaskRepository interface {
	Create(ctx context.Context, s *Subtask) error
	ListByTodo(ctx context.Context, todoID int64) ([]Subtask, error)
	GetByID(ctx context.Context, todoID, id int64) (*Subtask, error)
	Update(ctx context.Context, s *Subtask) error
	Delete(ctx context.Context, todoID, id int64) error
	TodoExists(ctx context.Context, todoID int64) (bool, error)
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) SubtaskRepository {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, s *Subtask) error {
	query := `
		INSERT INTO subtasks (todo_id, title)
		VALUES ($1, $2)
		RETURNING id, completed, created_at, updated_at
	`

	return r.db.QueryRow(ctx, query, s.TodoID, s.Title).Scan(
		&s.ID,
		&s.Completed,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

func (r *PostgresRepo) ListByTodo(ctx context.Context, todoID int64) ([]Subtask, error) {
	query := `
		SELECT id, todo_id, title, completed, created_at, updated_at
		FROM subtasks
		WHERE todo_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, todoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subtasks []Subtask
	for rows.Next() {
		var s Subtask
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

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subtasks, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, todoID, id int64) (*Subtask, error) {
	query := `
		SELECT id, todo_id, title, completed, created_at, updated_at
		FROM subtasks
		WHERE id = $1 AND todo_id = $2
	`

	var s Subtask
	err := r.db.QueryRow(ctx, query, id, todoID).Scan(
		&s.ID,
		&s.TodoID,
		&s.Title,
		&s.Completed,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &s, nil
}

func (r *PostgresRepo) Update(ctx context.Context, s *Subtask) error {
	query := `
		UPDATE subtasks
		SET title = $1, completed = $2, updated_at = NOW()
		WHERE id = $3 AND todo_id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, s.Title, s.Completed, s.ID, s.TodoID)
	if err != nil {
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, todoID, id int64) error {
	query := `
		DELETE FROM subtasks
		WHERE id = $1 AND todo_id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, id, todoID)
	if err != nil {
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepo) TodoExists(ctx context.Context, todoID int64) (bool, error) {
	var id int64
	err := r.db.QueryRow(ctx, `SELECT id FROM todos WHERE id = $1`, todoID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
