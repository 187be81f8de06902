package todo

import (
	"time"

	"github.com/aekeus/ralph-test/internal/tag"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func validPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

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

	// many-to-many ผ่าน todo_tags (ฝั่ง write อยู่ใน internal/tag)
	Tags []tag.Tag `json:"tags"`
}

type Stats struct {
	Total      int           `json:"total"`
	Completed  int           `json:"completed"`
	Active     int           `json:"active"`
	Overdue    int           `json:"overdue"`
	ByPriority PriorityStats `json:"by_priority"`
}

type PriorityStats struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}
