package export

import (
	"strconv"
	"strings"
)

const csvHeader = "todo_id,todo_title,todo_completed,todo_due_date,todo_priority,subtask_id,subtask_title,subtask_completed"

// encodeCSV แปลงแถว join เป็น CSV ตาม format ที่ fix ไว้
// title ทุกตัวครอบด้วย double quote และ quote ข้างในถูก double ("" )
// ฝั่ง subtask ที่เป็น NULL ปล่อยเป็นช่องว่าง
func encodeCSV(rows []Row) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, csvHeader)

	for _, r := range rows {
		fields := []string{
			strconv.FormatInt(r.TodoID, 10),
			quote(r.TodoTitle),
			strconv.FormatBool(r.TodoCompleted),
			"",
			r.TodoPriority,
			"",
			"",
			"",
		}

		if r.TodoDueDate != nil {
			fields[3] = r.TodoDueDate.Format("2006-01-02")
		}

		if r.SubtaskID != nil {
			fields[5] = strconv.FormatInt(*r.SubtaskID, 10)
			if r.SubtaskTitle != nil {
				fields[6] = quote(*r.SubtaskTitle)
			}
			if r.SubtaskCompleted != nil {
				fields[7] = strconv.FormatBool(*r.SubtaskCompleted)
			}
		}

		lines = append(lines, strings.Join(fields, ","))
	}

	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
