package client

import (
	"context"

	"github.com/jwhitt/daybook/internal/record"
)

// Session holds a per-date projection of the store for one CLI invocation
// or interactive view.
//
// The session is not safe for concurrent use and is never shared: it exists
// per process, re-synchronized by Refresh rather than incremental sync. The
// store remains the single source of truth; the session only mirrors what
// the server has confirmed.
type Session struct {
	client *Client
	tasks  map[string][]record.Task
	notes  map[string][]record.Note
}

// NewSession creates an empty session over the given API client.
func NewSession(c *Client) *Session {
	return &Session{
		client: c,
		tasks:  make(map[string][]record.Task),
		notes:  make(map[string][]record.Note),
	}
}

// Refresh replaces the cached state for one date with a fresh read.
func (s *Session) Refresh(ctx context.Context, date string) error {
	tasks, err := s.client.ListTasks(ctx, date)
	if err != nil {
		return err
	}
	notes, err := s.client.ListNotes(ctx, date)
	if err != nil {
		return err
	}
	s.tasks[date] = tasks
	s.notes[date] = notes
	return nil
}

// Tasks returns the cached tasks for a date. Returns nil for a date that
// has never been refreshed.
func (s *Session) Tasks(date string) []record.Task {
	return s.tasks[date]
}

// Notes returns the cached notes for a date.
func (s *Session) Notes(date string) []record.Note {
	return s.notes[date]
}

// AddTask creates a task through the API and merges the echoed canonical
// row into the cache. The cache is untouched if the create fails.
func (s *Session) AddTask(ctx context.Context, text, date string) (record.Task, error) {
	task, err := s.client.CreateTask(ctx, text, date)
	if err != nil {
		return record.Task{}, err
	}
	s.tasks[date] = append(s.tasks[date], task)
	return task, nil
}

// AddNote creates a note through the API and merges the echoed canonical
// row into the cache.
func (s *Session) AddNote(ctx context.Context, text, date string) (record.Note, error) {
	note, err := s.client.CreateNote(ctx, text, date)
	if err != nil {
		return record.Note{}, err
	}
	s.notes[date] = append(s.notes[date], note)
	return note, nil
}

// SetTaskCompletion toggles a task through the API, then applies the
// confirmed flag to the cached copy.
func (s *Session) SetTaskCompletion(ctx context.Context, date string, id int64, completed bool) error {
	if err := s.client.SetTaskCompletion(ctx, id, completed); err != nil {
		return err
	}
	day := s.tasks[date]
	for i := range day {
		if day[i].ID == id {
			day[i].Completed = completed
			break
		}
	}
	return nil
}

// RemoveTask deletes a task through the API, then filters it out of the
// cached day.
func (s *Session) RemoveTask(ctx context.Context, date string, id int64) error {
	if err := s.client.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.tasks[date] = filterTasks(s.tasks[date], id)
	return nil
}

// RemoveNote deletes a note through the API, then filters it out of the
// cached day.
func (s *Session) RemoveNote(ctx context.Context, date string, id int64) error {
	if err := s.client.DeleteNote(ctx, id); err != nil {
		return err
	}
	s.notes[date] = filterNotes(s.notes[date], id)
	return nil
}

func filterTasks(tasks []record.Task, id int64) []record.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func filterNotes(notes []record.Note, id int64) []record.Note {
	out := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}
