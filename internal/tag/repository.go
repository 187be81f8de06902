package tag

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ================== Error กลาง ==================

var (
	ErrNotFound      = errors.New("tag not found")
	ErrTodoNotFound  = errors.New("todo not found")
	ErrDuplicate     = errors.New("tag already exists")
	ErrNotAssociated = errors.New("tag not associated with this todo")
)

// ================== Interface ==================

type TagRepository interface {
	Create(ctx context.Context, t *Tag) error
	GetAll(ctx context.Context) ([]Tag, error)
	GetByID(ctx context.Context, id int64) (*Tag, error)
	ListByTodo(ctx context.Context, todoID int64) ([]Tag, error)
	TodoExists(ctx context.Context, todoID int64) (bool, error)
	Attach(ctx context.Context, todoID, tagID int64) error
	Detach(ctx context.Context, todoID, tagID int64) error
}

type postgresRepo struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) TagRepository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Create(ctx context.Context, t *Tag) error {
	query := `
		INSERT INTO tags (name, color)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, t.Name, t.Color).Scan(&t.ID)
	if err != nil {
		// 23505 = unique_violation (ชื่อ tag ซ้ำ)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}

	return nil
}

func (r *postgresRepo) GetAll(ctx context.Context) ([]Tag, error) {
	query := `
		SELECT id, name, color
		FROM tags
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTags(rows)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Tag, error) {
	query := `
		SELECT id, name, color
		FROM tags
		WHERE id = $1
	`

	var t Tag
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &t, nil
}

func (r *postgresRepo) ListByTodo(ctx context.Context, todoID int64) ([]Tag, error) {
	query := `
		SELECT t.id, t.name, t.color
		FROM tags t
		JOIN todo_tags tt ON t.id = tt.tag_id
		WHERE tt.todo_id = $1
		ORDER BY t.name ASC
	`

	rows, err := r.db.Query(ctx, query, todoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTags(rows)
}

func (r *postgresRepo) TodoExists(ctx context.Context, todoID int64) (bool, error) {
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

func (r *postgresRepo) Attach(ctx context.Context, todoID, tagID int64) error {
	// idempotent: ผูกซ้ำกี่ครั้งก็ได้ ไม่ error
	query := `
		INSERT INTO todo_tags (todo_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, todoID, tagID)
	return err
}

func (r *postgresRepo) Detach(ctx context.Context, todoID, tagID int64) error {
	query := `
		DELETE FROM todo_tags
		WHERE todo_id = $1 AND tag_id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, todoID, tagID)
	if err != nil {
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotAssociated
	}

	return nil
}

func scanTags(rows pgx.Rows) ([]Tag, error) {
	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}
