// dto.go
package todo

import "time"

// ใช้ตอนสร้าง
type CreateTodoInput struct {
	Title    string     `json:"title"`
	DueDate  *time.Time `json:"due_date"`
	Priority string     `json:"priority"`
	Notes    *string    `json:"notes"`
}

// ใช้ตอนแก้ไข (field ไหนไม่ส่งมา = คงค่าเดิม)
type UpdateTodoInput struct {
	Title     *string    `json:"title"`
	Completed *bool      `json:"completed"`
	DueDate   *time.Time `json:"due_date"`
	Priority  *string    `json:"priority"`
	Notes     *string    `json:"notes"`
	Position  *int       `json:"position"`
}

// ใช้กับ PUT /todos/reorder
// field เป็น pointer เพื่อแยก "ไม่ได้ส่งมา" ออกจากค่า 0
type ReorderInput struct {
	Orders []OrderEntryInput `json:"orders"`
}

type OrderEntryInput struct {
	ID       *int64 `json:"id"`
	Position *int   `json:"position"`
}

// OrderEntry คือ entry ที่ validate แล้ว ส่งต่อให้ repository
type OrderEntry struct {
	ID       int64 `json:"id"`
	Position int   `json:"position"`
}
