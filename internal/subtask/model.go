package subtask

import "time"

type Subtask struct {
	ID        int64     `json:"id"`
	TodoID    int64     `json:"todo_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateSubtaskInput struct {
	Title string `json:"title"`
}

type UpdateSubtaskInput struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}
