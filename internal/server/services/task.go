// Package services contains server-side business logic. This file implements
// TaskService: the owner-scoped task lifecycle (create, list, get, partial
// update, completion toggle, delete) with field validation and timestamp
// maintenance. Read-modify-write operations run inside one transaction with
// the row locked, so concurrent mutations of the same task serialize at the
// database.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// Field length limits, counted in Unicode code points.
const (
	TitleMinLen       = 1
	TitleMaxLen       = 200
	DescriptionMaxLen = 1000
)

// TaskService provides the task lifecycle operations. Callers must have
// authorized the owner before invoking any method; every query below is
// additionally filtered by owner so a bypassed guard still cannot cross
// user boundaries.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

// NewTaskService constructs a TaskService using repositories from m.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{
		db:          db,
		repomanager: m,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < TitleMinLen || n > TitleMaxLen {
		return fmt.Errorf("%w: title must be %d-%d characters", common.ErrValidation, TitleMinLen, TitleMaxLen)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > DescriptionMaxLen {
		return fmt.Errorf("%w: description must be at most %d characters", common.ErrValidation, DescriptionMaxLen)
	}
	return nil
}

// Create validates the fields and inserts a new task owned by owner. The
// owner always comes from the authenticated subject, never from the request
// body. Both timestamps are set to the same instant.
func (s *TaskService) Create(ctx context.Context, owner, title, description string, completed bool) (*models.Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	now := s.now()
	task := &models.Task{
		UserID:      owner,
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	repo := s.repomanager.Tasks(s.db)
	created, err := repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return created, nil
}

// List returns all tasks belonging to owner, oldest id first.
func (s *TaskService) List(ctx context.Context, owner string) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	tasks, err := repo.SelectByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

// Get returns the task with the given id if it belongs to owner. A task
// owned by someone else yields common.ErrNotFound, identical to a missing id.
func (s *TaskService) Get(ctx context.Context, owner string, id int64) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	return repo.GetByID(ctx, owner, id)
}

// Update applies the set slots of patch to the task and refreshes
// updated_at. Fetch, merge and persist happen in one transaction with the
// row locked; validation failures roll the transaction back.
func (s *TaskService) Update(ctx context.Context, owner string, id int64, patch models.TaskPatch) (*models.Task, error) {
	var task *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		t, err := repo.GetByIDForUpdate(ctx, owner, id)
		if err != nil {
			return err
		}

		patch.Apply(t)
		if err := validateTitle(t.Title); err != nil {
			return err
		}
		if err := validateDescription(t.Description); err != nil {
			return err
		}

		t.UpdatedAt = s.now()
		if err := repo.Update(ctx, t); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleCompletion flips the completed flag and refreshes updated_at, in one
// transaction with the row locked.
func (s *TaskService) ToggleCompletion(ctx context.Context, owner string, id int64) (*models.Task, error) {
	var task *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		t, err := repo.GetByIDForUpdate(ctx, owner, id)
		if err != nil {
			return err
		}

		t.Completed = !t.Completed
		t.UpdatedAt = s.now()
		if err := repo.Update(ctx, t); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task permanently. A second delete of the same id, like
// any other operation on it, reports common.ErrNotFound; the id is never
// reassigned.
func (s *TaskService) Delete(ctx context.Context, owner string, id int64) error {
	repo := s.repomanager.Tasks(s.db)
	return repo.Delete(ctx, owner, id)
}
