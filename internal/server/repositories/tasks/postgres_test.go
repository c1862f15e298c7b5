package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func taskColumns() []string {
	return []string{"id", "user_id", "title", "description", "completed", "created_at", "updated_at"}
}

func TestCreate_AssignsID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO tasks .* RETURNING id`).
		WithArgs("u1", "Buy milk", "", false, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	task, err := repo.Create(context.Background(), &models.Task{
		UserID:    "u1",
		Title:     "Buy milk",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 1 {
		t.Fatalf("want id 1, got %d", task.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO tasks .* RETURNING id`).
		WillReturnError(errors.New("db is down"))

	_, err := repo.Create(context.Background(), &models.Task{UserID: "u1", Title: "x"})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestSelectByOwner_FiltersAndOrders(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM tasks\s+WHERE user_id = \$1\s+ORDER BY id`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(taskColumns()).
			AddRow(int64(1), "u1", "a", "", false, now, now).
			AddRow(int64(2), "u1", "b", "desc", true, now, now))

	got, err := repo.SelectByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 tasks, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected order: %d, %d", got[0].ID, got[1].ID)
	}
}

func TestSelectByOwner_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM tasks\s+WHERE user_id = \$1`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows(taskColumns()))

	got, err := repo.SelectByOwner(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatalf("want empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("want 0 tasks, got %d", len(got))
	}
}

func TestGetByID_OwnerScoped(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM tasks\s+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), "u1").
		WillReturnRows(sqlmock.NewRows(taskColumns()).
			AddRow(int64(5), "u1", "title", "", false, now, now))

	task, err := repo.GetByID(context.Background(), "u1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 5 || task.UserID != "u1" {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestGetByID_MissReturnsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// Same outcome whether the id does not exist or belongs to someone else.
	mock.ExpectQuery(`SELECT .* FROM tasks\s+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(999), "u1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "u1", 999)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetByIDForUpdate_LocksRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM tasks\s+WHERE id = \$1 AND user_id = \$2\s+FOR UPDATE`).
		WithArgs(int64(5), "u1").
		WillReturnRows(sqlmock.NewRows(taskColumns()).
			AddRow(int64(5), "u1", "title", "", false, now, now))

	_, err := repo.GetByIDForUpdate(context.Background(), "u1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()

	mock.ExpectExec(`UPDATE tasks SET title = \$1, description = \$2, completed = \$3, updated_at = \$4\s+WHERE id = \$5 AND user_id = \$6`).
		WithArgs("t", "d", true, now, int64(1), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Task{
		ID: 1, UserID: "u1", Title: "t", Description: "d", Completed: true, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdate_NoRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE tasks SET .* WHERE id = \$5 AND user_id = \$6`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Task{ID: 1, UserID: "u1"})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM tasks\s+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(1), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "u1", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelete_NoRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM tasks\s+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(1), "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "u1", 1)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
