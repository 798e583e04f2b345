// Package todo holds the in-memory task list the model manages through the
// todo tools. State lives for the process only.
package todo

import (
	"errors"
	"fmt"
	"strings"
)

// Status of a task. The pending -> in_progress -> done progression is a
// convention; any status may be set directly.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// ErrNotFound is returned when a task id does not exist.
var ErrNotFound = errors.New("task not found")

// ErrInvalidStatus is returned for a status outside the known set.
var ErrInvalidStatus = errors.New("invalid status")

// Item is a single task. IDs are 1-based and reassigned to stay contiguous
// after inserts; tasks are never deleted, only status-mutated.
type Item struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Status Status `json:"status"`
}

// Store is the ordered task list.
type Store struct {
	items []Item
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a pending task and returns its assigned id.
func (s *Store) Add(text string) int {
	id := len(s.items) + 1
	s.items = append(s.items, Item{ID: id, Text: text, Status: StatusPending})
	return id
}

// Insert places a new pending task before the task with beforeID. If no task
// has that id the task is appended. IDs are reassigned contiguously.
func (s *Store) Insert(beforeID int, text string) {
	index := len(s.items)
	for i, item := range s.items {
		if item.ID == beforeID {
			index = i
			break
		}
	}
	s.items = append(s.items[:index], append([]Item{{Text: text, Status: StatusPending}}, s.items[index:]...)...)
	for i := range s.items {
		s.items[i].ID = i + 1
	}
}

// SetStatus updates a task's status directly.
func (s *Store) SetStatus(id int, status Status) error {
	switch status {
	case StatusPending, StatusInProgress, StatusDone:
	default:
		return fmt.Errorf("%w: %q (want pending, in_progress, or done)", ErrInvalidStatus, status)
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Complete marks a task done.
func (s *Store) Complete(id int) error {
	return s.SetStatus(id, StatusDone)
}

// Items returns a copy of the task list in order.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.items)
}

// Render formats the list the way it is returned to the model.
func (s *Store) Render() string {
	if len(s.items) == 0 {
		return "No tasks."
	}
	var b strings.Builder
	for _, item := range s.items {
		fmt.Fprintf(&b, "%d) %s (%s)\n", item.ID, item.Text, item.Status)
	}
	return b.String()
}
