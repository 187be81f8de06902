package export

import (
	"strings"
	"testing"
	"time"
)

func TestEncodeCSVHeaderOnly(t *testing.T) {
	got := encodeCSV(nil)
	want := "todo_id,todo_title,todo_completed,todo_due_date,todo_priority,subtask_id,subtask_title,subtask_completed"
	if got != want {
		t.Errorf("empty export = %q, want header only", got)
	}
}

func TestEncodeCSVTodoWithoutSubtasks(t *testing.T) {
	rows := []Row{
		{TodoID: 1, TodoTitle: "solo", TodoCompleted: false, TodoPriority: "medium"},
	}

	lines := strings.Split(encodeCSV(rows), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}

	if lines[1] != `1,"solo",false,,medium,,,` {
		t.Errorf("row = %q", lines[1])
	}
}

func TestEncodeCSVTodoWithTwoSubtasks(t *testing.T) {
	subID1, subID2 := int64(10), int64(11)
	st1, st2 := "first", "second"
	done, notDone := true, false

	rows := []Row{
		{TodoID: 2, TodoTitle: "parent", TodoCompleted: true, TodoPriority: "high",
			SubtaskID: &subID1, SubtaskTitle: &st1, SubtaskCompleted: &done},
		{TodoID: 2, TodoTitle: "parent", TodoCompleted: true, TodoPriority: "high",
			SubtaskID: &subID2, SubtaskTitle: &st2, SubtaskCompleted: &notDone},
	}

	lines := strings.Split(encodeCSV(rows), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(lines))
	}

	if lines[1] != `2,"parent",true,,high,10,"first",true` {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != `2,"parent",true,,high,11,"second",false` {
		t.Errorf("row 2 = %q", lines[2])
	}

	// ทั้งสองแถวแชร์ field ฝั่ง todo เหมือนกัน
	if !strings.HasPrefix(lines[1], `2,"parent",true,,high,`) || !strings.HasPrefix(lines[2], `2,"parent",true,,high,`) {
		t.Error("rows must share the same todo fields")
	}
}

func TestEncodeCSVEscaping(t *testing.T) {
	rows := []Row{
		{TodoID: 3, TodoTitle: `Todo, with "quotes"`, TodoPriority: "low"},
	}

	lines := strings.Split(encodeCSV(rows), "\n")
	if !strings.Contains(lines[1], `"Todo, with ""quotes"""`) {
		t.Errorf("escaping wrong: %q", lines[1])
	}
}

func TestEncodeCSVDueDate(t *testing.T) {
	due := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	rows := []Row{
		{TodoID: 4, TodoTitle: "dated", TodoDueDate: &due, TodoPriority: "medium"},
	}

	lines := strings.Split(encodeCSV(rows), "\n")
	if lines[1] != `4,"dated",false,2026-03-14,medium,,,` {
		t.Errorf("row = %q", lines[1])
	}
}
