package export

import (
	"time"

	"github.com/aekeus/ralph-test/internal/subtask"
)

// Todo สำหรับ export (ไม่มี tags เหมือน response ปกติ เอาเฉพาะ column ของตาราง)
type Todo struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"due_date"`
	Priority  string     `json:"priority"`
	Notes     *string    `json:"notes"`
	Position  *int       `json:"position"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type TodoWithSubtasks struct {
	Todo
	Subtasks []subtask.Subtask `json:"subtasks"`
}

// Row คือหนึ่งแถวจาก LEFT JOIN (todo ที่ไม่มี subtask ได้ฝั่งขวาเป็น NULL)
type Row struct {
	TodoID           int64
	TodoTitle        string
	TodoCompleted    bool
	TodoDueDate      *time.Time
	TodoPriority     string
	SubtaskID        *int64
	SubtaskTitle     *string
	SubtaskCompleted *bool
}
