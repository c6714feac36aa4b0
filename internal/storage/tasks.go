package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"focusloop/internal/core/model"
)

// TaskStore persists tasks in SQLite.
type TaskStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewTaskStore returns a TaskStore bound to a migrated database handle.
func NewTaskStore(db *sql.DB) (*TaskStore, error) {
	if db == nil {
		return nil, fmt.Errorf("new task store: db is nil")
	}
	return &TaskStore{db: db, now: time.Now}, nil
}

// CreateTask inserts a task with a fresh id.
func (s *TaskStore) CreateTask(ctx context.Context, title string, customDuration *int) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, fmt.Errorf("create task: title is empty")
	}
	if customDuration != nil && *customDuration <= 0 {
		return model.Task{}, fmt.Errorf("create task: custom duration must be positive")
	}

	now := s.now().UTC()
	task := model.Task{
		ID:             uuid.NewString(),
		Title:          title,
		CustomDuration: customDuration,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.upsert(ctx, task); err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// UpdateTask upserts a task by id and returns the stored copy.
func (s *TaskStore) UpdateTask(ctx context.Context, task model.Task) (model.Task, error) {
	if strings.TrimSpace(task.ID) == "" {
		return model.Task{}, fmt.Errorf("update task: empty id")
	}
	now := s.now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	if err := s.upsert(ctx, task); err != nil {
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// GetTask returns the task with the given id.
func (s *TaskStore) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, custom_duration, total_time_spent, last_started_at, created_at, updated_at FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, fmt.Errorf("get task %s: %w", id, ErrNotFound)
		}
		return model.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

// LookupTask returns the task with the given id, or nil when it does not
// exist.
func (s *TaskStore) LookupTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.GetTask(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindTask resolves a task by full id or unique id prefix.
func (s *TaskStore) FindTask(ctx context.Context, idOrPrefix string) (model.Task, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return model.Task{}, fmt.Errorf("find task: empty id")
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, custom_duration, total_time_spent, last_started_at, created_at, updated_at FROM tasks WHERE substr(id, 1, length(?)) = ? LIMIT 2`, idOrPrefix, idOrPrefix)
	if err != nil {
		return model.Task{}, fmt.Errorf("find task: query: %w", err)
	}
	defer rows.Close()

	var matches []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return model.Task{}, fmt.Errorf("find task: scan: %w", err)
		}
		matches = append(matches, task)
	}
	if err := rows.Err(); err != nil {
		return model.Task{}, fmt.Errorf("find task: rows: %w", err)
	}

	switch len(matches) {
	case 0:
		return model.Task{}, fmt.Errorf("find task %s: %w", idOrPrefix, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return model.Task{}, fmt.Errorf("find task %s: ambiguous id prefix", idOrPrefix)
	}
}

// ListTasks returns all tasks ordered by creation time.
func (s *TaskStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, custom_duration, total_time_spent, last_started_at, created_at, updated_at FROM tasks ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: query: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks: scan: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: rows: %w", err)
	}
	return tasks, nil
}

func (s *TaskStore) upsert(ctx context.Context, task model.Task) error {
	var customDuration any
	if task.CustomDuration != nil {
		customDuration = *task.CustomDuration
	}
	var lastStartedAt any
	if task.LastStartedAt != nil {
		lastStartedAt = *task.LastStartedAt
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, custom_duration, total_time_spent, last_started_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			custom_duration = excluded.custom_duration,
			total_time_spent = excluded.total_time_spent,
			last_started_at = excluded.last_started_at,
			updated_at = excluded.updated_at`,
		task.ID,
		task.Title,
		customDuration,
		task.TotalTimeSpent,
		lastStartedAt,
		task.CreatedAt.UTC().Format(time.RFC3339Nano),
		task.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var task model.Task
	var customDuration sql.NullInt64
	var lastStartedAt sql.NullInt64
	var createdAtStr, updatedAtStr string

	err := row.Scan(&task.ID, &task.Title, &customDuration, &task.TotalTimeSpent, &lastStartedAt, &createdAtStr, &updatedAtStr)
	if err != nil {
		return model.Task{}, err
	}

	if customDuration.Valid {
		minutes := int(customDuration.Int64)
		task.CustomDuration = &minutes
	}
	if lastStartedAt.Valid {
		startedAt := lastStartedAt.Int64
		task.LastStartedAt = &startedAt
	}

	task.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return model.Task{}, fmt.Errorf("parse created_at: %w", err)
	}
	task.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAtStr)
	if err != nil {
		return model.Task{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return task, nil
}
