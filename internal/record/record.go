// Package record defines the persisted entities of daybook: tasks and notes,
// both scoped to a calendar day.
//
// Identity and timestamps are owned exclusively by the store; clients never
// supply them. A task's date is assigned at creation and never changes -- there
// is no "move to another day" operation.
package record

import (
	"fmt"
	"time"

	"github.com/jwhitt/daybook/internal/dateutil"
)

// Task is a completable to-do item scoped to a calendar date.
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note is a non-completable free-text annotation scoped to a calendar date.
// Notes are only ever created and deleted, never updated.
type Note struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Records is the aggregate cross-date view of everything in the store,
// used for reporting rather than the primary day view.
type Records struct {
	Tasks []Task `json:"tasks"`
	Notes []Note `json:"notes"`
}

// ValidateNew checks the caller-supplied fields of a task or note before it
// is handed to the store. Identity and timestamps are store-assigned and are
// deliberately not checked here.
func ValidateNew(text, date string) error {
	if text == "" {
		return fmt.Errorf("text is required")
	}
	if err := dateutil.Validate(date); err != nil {
		return err
	}
	return nil
}
