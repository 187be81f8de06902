package todo

import (
	"context"
	"errors"

	"github.com/aekeus/ralph-test/internal/tag"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ================== Error กลาง ==================

var ErrNotFound = errors.New("todo not found")

// ใช้ร่วมกับ UPDATE / DELETE เพื่อตรวจว่าโดนแก้ไขจริงกี่แถว
func checkRowsAffectedOne(cmdTag pgconn.CommandTag) error {
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ================== Interface ==================

type TodoRepository interface {
	Create(ctx context.Context, t *Todo) error
	GetByID(ctx context.Context, id int64) (*Todo, error)
	List(ctx context.Context, f Filters) ([]Todo, error)
	Update(ctx context.Context, t *Todo) error
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, orders []OrderEntry) error
	Stats(ctx context.Context) (*Stats, error)
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) TodoRepository {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, t *Todo) error {
	query := `
		INSERT INTO todos (title, completed, due_date, priority, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx,
		query,
		t.Title,
		t.Completed,
		t.DueDate,
		t.Priority,
		t.Notes,
	).Scan(
		&t.ID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return err
	}

	t.Tags = []tag.Tag{}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (*Todo, error) {
	query := `
		SELECT id, title, completed, due_date, priority, notes, position, created_at, updated_at
		FROM todos
		WHERE id = $1
	`

	var t Todo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Title,
		&t.Completed,
		&t.DueDate,
		&t.Priority,
		&t.Notes,
		&t.Position,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := r.attachTags(ctx, []*Todo{&t}); err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *PostgresRepo) List(ctx context.Context, f Filters) ([]Todo, error) {
	query, args := buildListQuery(f)

	rows, err := r.db.Query(ctx, query, args...)
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

	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*Todo, len(todos))
	for i := range todos {
		ptrs[i] = &todos[i]
	}
	if err := r.attachTags(ctx, ptrs); err != nil {
		return nil, err
	}

	return todos, nil
}

// attachTags เติม tags ให้ todo ทุกตัวด้วย query เดียว (ไม่ยิงทีละแถว)
func (r *PostgresRepo) attachTags(ctx context.Context, todos []*Todo) error {
	if len(todos) == 0 {
		return nil
	}

	ids := make([]int64, len(todos))
	for i, t := range todos {
		ids[i] = t.ID
		t.Tags = []tag.Tag{}
	}

	query := `
		SELECT tt.todo_id, t.id, t.name, t.color
		FROM todo_tags tt
		JOIN tags t ON t.id = tt.tag_id
		WHERE tt.todo_id = ANY($1)
		ORDER BY t.name ASC
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byTodo := make(map[int64][]tag.Tag)
	for rows.Next() {
		var todoID int64
		var tg tag.Tag
		if err := rows.Scan(&todoID, &tg.ID, &tg.Name, &tg.Color); err != nil {
			return err
		}
		byTodo[todoID] = append(byTodo[todoID], tg)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, t := range todos {
		if tags, ok := byTodo[t.ID]; ok {
			t.Tags = tags
		}
	}

	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, t *Todo) error {
	query := `
		UPDATE todos
		SET
			title = $1,
			completed = $2,
			due_date = $3,
			priority = $4,
			notes = $5,
			position = $6,
			updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(
		ctx,
		query,
		t.Title,
		t.Completed,
		t.DueDate,
		t.Priority,
		t.Notes,
		t.Position,
		t.ID,
	)
	if err != nil {
		return err
	}

	return checkRowsAffectedOne(cmdTag)
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	// subtasks หายตามด้วย ON DELETE CASCADE
	query := `
		DELETE FROM todos
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	return checkRowsAffectedOne(cmdTag)
}

// Reorder อัปเดต position ทั้ง batch ใน transaction เดียว
// พลาดแถวเดียว = rollback ทั้งหมด ห้ามมี partial reorder
func (r *PostgresRepo) Reorder(ctx context.Context, orders []OrderEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE todos
		SET position = $1, updated_at = NOW()
		WHERE id = $2
	`

	for _, o := range orders {
		if _, err := tx.Exec(ctx, query, o.Position, o.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepo) Stats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE completed),
			COUNT(*) FILTER (WHERE NOT completed),
			COUNT(*) FILTER (WHERE NOT completed AND due_date < CURRENT_DATE),
			COUNT(*) FILTER (WHERE priority = 'high'),
			COUNT(*) FILTER (WHERE priority = 'medium'),
			COUNT(*) FILTER (WHERE priority = 'low')
		FROM todos
	`

	var s Stats
	err := r.db.QueryRow(ctx, query).Scan(
		&s.Total,
		&s.Completed,
		&s.Active,
		&s.Overdue,
		&s.ByPriority.High,
		&s.ByPriority.Medium,
		&s.ByPriority.Low,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
