package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

// testStorePath returns a temporary path for test databases
func testStorePath(t *testing.T) string {
	tmpDir := t.TempDir()
	return filepath.Join(tmpDir, "test.db")
}

// openTestStore opens and initializes a fresh store
func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(testStorePath(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return s
}

// TestOpen_Success tests successful database creation
func TestOpen_Success(t *testing.T) {
	path := testStorePath(t)
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if s.path != path {
		t.Errorf("path = %q, want %q", s.path, path)
	}
}

// TestInit_Success tests schema creation
func TestInit_Success(t *testing.T) {
	s := openTestStore(t)

	tables := []string{"tasks", "notes"}
	for _, table := range tables {
		var count int
		query := `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`
		err := s.conn.QueryRow(query, table).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to query table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("Table %s does not exist", table)
		}
	}
}

// TestInit_Idempotent tests that schema initialization is idempotent
func TestInit_Idempotent(t *testing.T) {
	s := openTestStore(t)

	if err := s.Init(); err != nil {
		t.Errorf("Second Init() failed: %v", err)
	}
}

// TestCreateTask_FirstID tests that a fresh store assigns id 1
func TestCreateTask_FirstID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	task, err := s.CreateTask(ctx, "Buy milk", "2024-06-01")
	if err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}

	if task.ID != 1 {
		t.Errorf("ID = %d, want 1", task.ID)
	}
	if task.Text != "Buy milk" {
		t.Errorf("Text = %q, want 'Buy milk'", task.Text)
	}
	if task.Completed {
		t.Error("Completed = true, want false")
	}
	if task.Date != "2024-06-01" {
		t.Errorf("Date = %q, want '2024-06-01'", task.Date)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("timestamps not assigned")
	}
}

// TestCreateTask_ThenList tests that a created task appears exactly once
// in the listing for its date
func TestCreateTask_ThenList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, "5km run", "2024-06-02")
	if err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}

	tasks, err := s.ListTasks(ctx, "2024-06-02")
	if err != nil {
		t.Fatalf("ListTasks() failed: %v", err)
	}

	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].ID != created.ID {
		t.Errorf("ID = %d, want %d", tasks[0].ID, created.ID)
	}
	if tasks[0].Text != "5km run" {
		t.Errorf("Text = %q, want '5km run'", tasks[0].Text)
	}
	if tasks[0].Completed {
		t.Error("Completed = true, want false")
	}

	// Other dates stay empty
	other, err := s.ListTasks(ctx, "2024-06-03")
	if err != nil {
		t.Fatalf("ListTasks() failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("got %d tasks for other date, want 0", len(other))
	}
}

// TestCreateTask_EmptyText tests that validation rejects empty text before
// any row is written
func TestCreateTask_EmptyText(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateTask(ctx, "", "2024-06-01"); err == nil {
		t.Fatal("CreateTask() with empty text succeeded, want error")
	}

	tasks, err := s.ListTasks(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("ListTasks() failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks after rejected create, want 0", len(tasks))
	}
}

// TestCreateTask_BadDate tests that a malformed date is rejected
func TestCreateTask_BadDate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, date := range []string{"", "06/01/2024", "2024-6-1", "not-a-date"} {
		if _, err := s.CreateTask(ctx, "text", date); err == nil {
			t.Errorf("CreateTask() with date %q succeeded, want error", date)
		}
	}
}

// TestListTasks_Empty tests that a date with no entities returns an empty
// slice, never an error
func TestListTasks_Empty(t *testing.T) {
	s := openTestStore(t)

	tasks, err := s.ListTasks(context.Background(), "1999-01-01")
	if err != nil {
		t.Fatalf("ListTasks() failed: %v", err)
	}
	if tasks == nil {
		t.Error("ListTasks() returned nil, want empty slice")
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(tasks))
	}
}

// TestListTasks_Ordering tests oldest-first ordering within a date
func TestListTasks_Ordering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if _, err := s.CreateTask(ctx, text, "2024-06-01"); err != nil {
			t.Fatalf("CreateTask(%q) failed: %v", text, err)
		}
	}

	tasks, err := s.ListTasks(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("ListTasks() failed: %v", err)
	}
	if len(tasks) != len(texts) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(texts))
	}
	for i, text := range texts {
		if tasks[i].Text != text {
			t.Errorf("tasks[%d].Text = %q, want %q", i, tasks[i].Text, text)
		}
	}
}

// TestListTasks_CorruptTimestamp tests that a malformed stored timestamp
// surfaces an error instead of degrading to a zero time
func TestListTasks_CorruptTimestamp(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	insert := `
	INSERT INTO tasks (text, completed, date, created_at, updated_at)
	VALUES ('x', 0, '2024-06-01', 'garbage', 'garbage')
	`
	if _, err := s.conn.Exec(insert); err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	if _, err := s.ListTasks(ctx, "2024-06-01"); err == nil {
		t.Error("ListTasks() over corrupt timestamp succeeded, want error")
	}

	if _, err := s.conn.Exec(`INSERT INTO notes (text, date, created_at, updated_at)
		VALUES ('n', '2024-06-01', 'garbage', 'garbage')`); err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}
	if _, err := s.ListNotes(ctx, "2024-06-01"); err == nil {
		t.Error("ListNotes() over corrupt timestamp succeeded, want error")
	}
}

// TestSetTaskCompletion_RoundTrip tests toggling completion on and off
// leaves text and date unchanged
func TestSetTaskCompletion_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, "Walk the dog", "2024-06-01")
	if err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}

	if err := s.SetTaskCompletion(ctx, created.ID, true); err != nil {
		t.Fatalf("SetTaskCompletion(true) failed: %v", err)
	}

	tasks, err := s.ListTasks(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("ListTasks() failed: %v", err)
	}
	if !tasks[0].Completed {
		t.Error("Completed = false after toggle on, want true")
	}

	if err := s.SetTaskCompletion(ctx, created.ID, false); err != nil {
		t.Fatalf("SetTaskCompletion(false) failed: %v", err)
	}

	tasks, err = s.ListTasks(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("ListTasks() failed: %v", err)
	}
	if tasks[0].Completed {
		t.Error("Completed = true after toggle off, want false")
	}
	if tasks[0].Text != "Walk the dog" {
		t.Errorf("Text = %q changed by toggle", tasks[0].Text)
	}
	if tasks[0].Date != "2024-06-01" {
		t.Errorf("Date = %q changed by toggle", tasks[0].Date)
	}
}

// TestSetTaskCompletion_NotFound tests that updating a missing id surfaces
// ErrNotFound
func TestSetTaskCompletion_NotFound(t *testing.T) {
	s := openTestStore(t)

	err := s.SetTaskCompletion(context.Background(), 42, true)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("SetTaskCompletion() error = %v, want ErrNotFound", err)
	}
}

// TestDeleteTask_Idempotent tests that deleting a task twice, or deleting
// an id that never existed, succeeds
func TestDeleteTask_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, "temp", "2024-06-01")
	if err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}

	if err := s.DeleteTask(ctx, created.ID); err != nil {
		t.Fatalf("DeleteTask() failed: %v", err)
	}
	if err := s.DeleteTask(ctx, created.ID); err != nil {
		t.Errorf("Second DeleteTask() failed: %v", err)
	}
	if err := s.DeleteTask(ctx, 9999); err != nil {
		t.Errorf("DeleteTask() of missing id failed: %v", err)
	}

	tasks, err := s.ListTasks(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("ListTasks() failed: %v", err)
	}
	for _, task := range tasks {
		if task.ID == created.ID {
			t.Errorf("task %d still listed after delete", created.ID)
		}
	}
}

// TestTaskIDs_NeverReused tests that identities stay monotonic after a
// delete
func TestTaskIDs_NeverReused(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.CreateTask(ctx, "one", "2024-06-01")
	if err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}
	if err := s.DeleteTask(ctx, first.ID); err != nil {
		t.Fatalf("DeleteTask() failed: %v", err)
	}

	second, err := s.CreateTask(ctx, "two", "2024-06-01")
	if err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}
	if second.ID <= first.ID {
		t.Errorf("second ID = %d, want > %d", second.ID, first.ID)
	}
}

// TestNotes_CreateListDelete tests the note mirror operations
func TestNotes_CreateListDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	note, err := s.CreateNote(ctx, "Great weather today", "2024-06-01")
	if err != nil {
		t.Fatalf("CreateNote() failed: %v", err)
	}
	if note.ID != 1 {
		t.Errorf("ID = %d, want 1", note.ID)
	}

	notes, err := s.ListNotes(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("ListNotes() failed: %v", err)
	}
	if len(notes) != 1 || notes[0].Text != "Great weather today" {
		t.Fatalf("unexpected notes: %+v", notes)
	}

	if err := s.DeleteNote(ctx, note.ID); err != nil {
		t.Fatalf("DeleteNote() failed: %v", err)
	}
	if err := s.DeleteNote(ctx, note.ID); err != nil {
		t.Errorf("Second DeleteNote() failed: %v", err)
	}

	notes, err = s.ListNotes(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("ListNotes() failed: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("got %d notes after delete, want 0", len(notes))
	}
}

// TestListAll_Ordering tests the aggregate view covers all dates in
// (date, created_at) order
func TestListAll_Ordering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Insert out of date order
	dates := []string{"2024-06-03", "2024-06-01", "2024-06-02"}
	for i, date := range dates {
		if _, err := s.CreateTask(ctx, fmt.Sprintf("task-%d", i), date); err != nil {
			t.Fatalf("CreateTask() failed: %v", err)
		}
	}
	if _, err := s.CreateNote(ctx, "note", "2024-06-02"); err != nil {
		t.Fatalf("CreateNote() failed: %v", err)
	}

	records, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() failed: %v", err)
	}

	if len(records.Tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(records.Tasks))
	}
	want := []string{"2024-06-01", "2024-06-02", "2024-06-03"}
	for i, date := range want {
		if records.Tasks[i].Date != date {
			t.Errorf("tasks[%d].Date = %q, want %q", i, records.Tasks[i].Date, date)
		}
	}

	if len(records.Notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(records.Notes))
	}
}

// TestListAll_Empty tests the aggregate view of a fresh store
func TestListAll_Empty(t *testing.T) {
	s := openTestStore(t)

	records, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() failed: %v", err)
	}
	if len(records.Tasks) != 0 || len(records.Notes) != 0 {
		t.Errorf("fresh store not empty: %+v", records)
	}
}

// TestScenario_TaskLifecycle walks the full create/list/toggle/delete
// round trip on a fresh store
func TestScenario_TaskLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, "Buy milk", "2024-06-01")
	if err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}
	if created.ID != 1 || created.Completed {
		t.Fatalf("unexpected created task: %+v", created)
	}

	tasks, err := s.ListTasks(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("ListTasks() failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != 1 || tasks[0].Completed {
		t.Fatalf("unexpected listing: %+v", tasks)
	}

	if err := s.SetTaskCompletion(ctx, 1, true); err != nil {
		t.Fatalf("SetTaskCompletion() failed: %v", err)
	}

	tasks, err = s.ListTasks(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("ListTasks() failed: %v", err)
	}
	if !tasks[0].Completed {
		t.Error("Completed = false, want true")
	}

	if err := s.DeleteTask(ctx, 1); err != nil {
		t.Fatalf("DeleteTask() failed: %v", err)
	}

	tasks, err = s.ListTasks(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("ListTasks() failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks after delete, want 0", len(tasks))
	}
}
