// Package models holds the persistent entity types shared by repositories,
// services and the HTTP layer.
package models

import "time"

// Task is the sole user-facing entity. UserID is fixed at creation from the
// authenticated subject and never changes afterwards.
type Task struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPatch is a partial update: one optional slot per mutable field. Nil
// slots leave the prior value untouched.
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Apply merges the set slots of the patch into t. It does not touch UserID
// or the timestamps; refreshing UpdatedAt is the caller's responsibility.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
