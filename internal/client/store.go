package client

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aekeus/ralph-test/internal/todo"
)

const (
	defaultDebounceDelay = 300 * time.Millisecond
	defaultUndoDelay     = 5 * time.Second
)

// Toast คือ notice ของ delete ที่ยัง undo ได้
// ของจริงหายจาก list แล้ว แต่ server delete ยังไม่เกิดจนกว่า timer จะหมด
type Toast struct {
	ID   int64
	Todo todo.Todo

	index int // ตำแหน่งเดิมใน list เอาไว้ restore ตอน undo
	timer *time.Timer
	done  bool // กัน expiry กับ dismiss ชนกัน (finalize ได้ครั้งเดียว)
}

// Store คือ state ฝั่ง client: list ปัจจุบัน + filter + selection + pending delete
// ทุก method เรียกจาก goroutine ไหนก็ได้ (กันด้วย mutex ตัวเดียว)
type Store struct {
	api *Client

	// delay override ได้ (ใน test ใช้ค่าสั้น ๆ)
	DebounceDelay time.Duration
	UndoDelay     time.Duration

	mu          sync.Mutex
	todos       []todo.Todo
	filters     todo.Filters
	selected    map[int64]struct{}
	toasts      map[int64]*Toast
	nextToastID int64
	debounce    *time.Timer
	lastErr     error
}

func NewStore(api *Client) *Store {
	return &Store{
		api:           api,
		DebounceDelay: defaultDebounceDelay,
		UndoDelay:     defaultUndoDelay,
		selected:      make(map[int64]struct{}),
		toasts:        make(map[int64]*Toast),
	}
}

// ================== list / filters ==================

// Refresh โหลด list จาก server ด้วย filter ปัจจุบัน ทับ state เดิมทั้งก้อน
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	f := s.filters
	s.mu.Unlock()

	todos, err := s.api.ListTodos(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return err
	}

	s.lastErr = nil
	s.todos = todos

	// ตัดของที่รอ undo อยู่ออกจาก list (server ยังมี row อยู่)
	for _, t := range s.toasts {
		s.removeLocked(t.Todo.ID)
	}

	return nil
}

func (s *Store) SetSearch(v string)   { s.setFilter(func(f *todo.Filters) { f.Search = v }) }
func (s *Store) SetStatus(v string)   { s.setFilter(func(f *todo.Filters) { f.Status = v }) }
func (s *Store) SetPriority(v string) { s.setFilter(func(f *todo.Filters) { f.Priority = v }) }
func (s *Store) SetTags(v []string)   { s.setFilter(func(f *todo.Filters) { f.Tags = v }) }
func (s *Store) SetSort(v string)     { s.setFilter(func(f *todo.Filters) { f.Sort = v }) }

// setFilter อัปเดต filter แล้วนัด refetch แบบ debounce (trailing edge)
// เปลี่ยน filter รัว ๆ = timer ตัวเก่าโดนยกเลิก ยิงจริงครั้งเดียวตอนหยุดพิมพ์
func (s *Store) setFilter(apply func(*todo.Filters)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply(&s.filters)

	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(s.DebounceDelay, func() {
		_ = s.Refresh(context.Background())
	})
}

func (s *Store) Filters() todo.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *Store) Todos() []todo.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]todo.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

// Err คืน error ล่าสุดจาก operation ที่พัง (nil ถ้ารอบล่าสุดผ่าน)
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ================== selection ==================

func (s *Store) Select(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[id] = struct{}{}
}

func (s *Store) Deselect(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, id)
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[int64]struct{})
}

// Selected คืน id ที่เลือกอยู่ ตามลำดับใน list ปัจจุบัน
func (s *Store) Selected() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for _, t := range s.todos {
		if _, ok := s.selected[t.ID]; ok {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// ================== delete + undo ==================

// Delete เอา todo ออกจาก list ทันที แล้วตั้ง undo window
// server delete เกิดตอน window หมด (หรือโดน dismiss) เท่านั้น
// คืน toast id (0 = ไม่เจอ todo นั้นใน list)
func (s *Store) Delete(id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return 0
	}

	s.nextToastID++
	toastID := s.nextToastID

	t := &Toast{
		ID:    toastID,
		Todo:  s.todos[idx],
		index: idx,
	}
	s.todos = append(s.todos[:idx], s.todos[idx+1:]...)
	delete(s.selected, id)

	t.timer = time.AfterFunc(s.UndoDelay, func() {
		s.finalize(toastID)
	})
	s.toasts[toastID] = t

	return toastID
}

// Undo ยกเลิก delete ก่อน window หมด: คืน todo กลับ list แล้ว server ไม่โดนเรียกเลย
func (s *Store) Undo(toastID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.toasts[toastID]
	if !ok || t.done {
		return false
	}

	t.done = true
	t.timer.Stop()
	delete(s.toasts, toastID)

	idx := t.index
	if idx > len(s.todos) {
		idx = len(s.todos)
	}
	s.todos = append(s.todos[:idx], append([]todo.Todo{t.Todo}, s.todos[idx:]...)...)

	return true
}

// Dismiss ปิด notice เอง = ยืนยัน delete ทันที ไม่รอ timer
func (s *Store) Dismiss(toastID int64) {
	s.finalize(toastID)
}

// Toasts คืน notice ที่ยังค้างอยู่ (ยัง undo ได้) เรียงตามลำดับที่ลบ
func (s *Store) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, 0, len(s.toasts))
	for _, t := range s.toasts {
		out = append(out, Toast{ID: t.ID, Todo: t.Todo})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// finalize ยิง server delete จริง เรียกได้จากทั้ง timer หมดอายุและ dismiss
// done flag กันไม่ให้ยิงซ้ำ
func (s *Store) finalize(toastID int64) {
	s.mu.Lock()
	t, ok := s.toasts[toastID]
	if !ok || t.done {
		s.mu.Unlock()
		return
	}
	t.done = true
	t.timer.Stop()
	delete(s.toasts, toastID)
	id := t.Todo.ID
	s.mu.Unlock()

	// เรียก API นอก lock
	if err := s.api.DeleteTodo(context.Background(), id); err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
	}
}

// ================== reorder ==================

// Reorder จัดลำดับ local ทันที (optimistic) แล้วค่อย persist
// ถ้า server fail โหลด list ใหม่ทิ้ง state ที่เดาไว้
func (s *Store) Reorder(ctx context.Context, ids []int64) error {
	s.mu.Lock()

	byID := make(map[int64]todo.Todo, len(s.todos))
	for _, t := range s.todos {
		byID[t.ID] = t
	}

	reordered := make([]todo.Todo, 0, len(s.todos))
	orders := make([]todo.OrderEntry, 0, len(ids))
	for i, id := range ids {
		t, ok := byID[id]
		if !ok {
			continue
		}
		pos := i + 1
		t.Position = &pos
		reordered = append(reordered, t)
		orders = append(orders, todo.OrderEntry{ID: id, Position: pos})
		delete(byID, id)
	}
	// id ที่ไม่อยู่ใน ids ต่อท้ายตามลำดับเดิม
	for _, t := range s.todos {
		if _, ok := byID[t.ID]; ok {
			reordered = append(reordered, t)
		}
	}

	s.todos = reordered
	s.mu.Unlock()

	if err := s.api.ReorderTodos(ctx, orders); err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		_ = s.Refresh(ctx)
		return err
	}

	return nil
}

// ================== bulk ==================

// BulkDelete สร้าง undoable delete แยกกันต่อ id (timer ใครหมดของมัน)
func (s *Store) BulkDelete() []int64 {
	var toastIDs []int64
	for _, id := range s.Selected() {
		if toastID := s.Delete(id); toastID != 0 {
			toastIDs = append(toastIDs, toastID)
		}
	}
	return toastIDs
}

// BulkSetPriority ยิง update ทีละตัวตามลำดับ ไม่ atomic
// ตัวไหนพัง หยุดตรงนั้น ตัวก่อนหน้าที่สำเร็จแล้วคงไว้
func (s *Store) BulkSetPriority(ctx context.Context, priority string) error {
	for _, id := range s.Selected() {
		updated, err := s.api.UpdateTodo(ctx, id, todo.UpdateTodoInput{Priority: &priority})
		if err != nil {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
			return err
		}

		s.mu.Lock()
		if idx := s.indexLocked(id); idx >= 0 {
			s.todos[idx] = *updated
		}
		s.mu.Unlock()
	}
	return nil
}

// ================== helper ==================

func (s *Store) indexLocked(id int64) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeLocked(id int64) {
	if idx := s.indexLocked(id); idx >= 0 {
		s.todos = append(s.todos[:idx], s.todos[idx+1:]...)
	}
}
