package todo

import (
	"fmt"
	"strings"
)

// Filters คือเงื่อนไขจาก query string ของ GET /api/todos
// ค่าว่าง = ไม่ filter ข้อนั้น
type Filters struct {
	Search   string
	Status   string // active | completed | overdue
	Priority string // low | medium | high
	Tags     []string
	Sort     string // newest | due_date | priority
}

// buildListQuery ประกอบ WHERE / ORDER BY จาก filter ที่ส่งมาเท่านั้น
// ทุกค่าผ่าน placeholder ($n) ห้ามต่อ string ค่าจาก user ลง SQL ตรง ๆ
func buildListQuery(f Filters) (string, []any) {
	var conds []string
	var args []any

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}

	switch f.Status {
	case "active":
		conds = append(conds, "completed = FALSE")
	case "completed":
		conds = append(conds, "completed = TRUE")
	case "overdue":
		conds = append(conds, "completed = FALSE AND due_date < CURRENT_DATE")
	}

	if validPriority(f.Priority) {
		args = append(args, f.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}

	// tag filter แบบ AND: todo ต้องมีครบทุก tag ที่ระบุ
	if len(f.Tags) > 0 {
		args = append(args, f.Tags)
		tagsArg := len(args)
		args = append(args, len(f.Tags))
		countArg := len(args)
		conds = append(conds, fmt.Sprintf(
			`id IN (
				SELECT tt.todo_id
				FROM todo_tags tt
				JOIN tags t ON t.id = tt.tag_id
				WHERE t.name = ANY($%d)
				GROUP BY tt.todo_id
				HAVING COUNT(DISTINCT t.name) = $%d
			)`, tagsArg, countArg))
	}

	query := `
		SELECT id, title, completed, due_date, priority, notes, position, created_at, updated_at
		FROM todos
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + orderClause(f.Sort)

	return query, args
}

func orderClause(sort string) string {
	switch sort {
	case "newest":
		return "created_at DESC"
	case "due_date":
		return "due_date ASC NULLS LAST, created_at DESC"
	case "priority":
		return "CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END, created_at DESC"
	default:
		// manual order ก่อน (position จาก drag-reorder) แถวที่ไม่เคยถูกลากไปท้ายสุด
		return "position ASC NULLS LAST, created_at DESC"
	}
}
