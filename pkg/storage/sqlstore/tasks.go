package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/platinummonkey/tasklist/pkg/storage"
)

// ListTasks returns the owner's tasks ordered by id
func (s *Store) ListTasks(ctx context.Context, ownerID int64) ([]storage.Task, error) {
	tasks := make([]storage.Task, 0)
	err := s.do("list_tasks", func() error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, user_id, task, completed
			FROM todos WHERE user_id = $1
			ORDER BY id
		`, ownerID)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var t storage.Task
			if err := rows.Scan(&t.ID, &t.OwnerID, &t.Description, &t.Completed); err != nil {
				return fmt.Errorf("failed to scan task: %w", err)
			}
			tasks = append(tasks, t)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask inserts an incomplete task and returns the stored record
func (s *Store) CreateTask(ctx context.Context, ownerID int64, description string) (*storage.Task, error) {
	task := &storage.Task{
		OwnerID:     ownerID,
		Description: description,
		Completed:   false,
	}
	err := s.do("create_task", func() error {
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO todos (user_id, task, completed)
			VALUES ($1, $2, $3)
			RETURNING id
		`, ownerID, description, false).Scan(&task.ID)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTaskCompleted sets the completed flag of a task the owner holds.
// Existence and ownership are checked by the same statement.
func (s *Store) UpdateTaskCompleted(ctx context.Context, ownerID, taskID int64, completed bool) error {
	return s.do("update_task", func() error {
		res, err := s.db.ExecContext(ctx, `
			UPDATE todos SET completed = $1
			WHERE id = $2 AND user_id = $3
		`, completed, taskID, ownerID)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return requireAffected(res)
	})
}

// DeleteTask removes a task the owner holds. Deleting a missing or foreign
// task reports storage.ErrNotFound, as UpdateTaskCompleted does.
func (s *Store) DeleteTask(ctx context.Context, ownerID, taskID int64) error {
	return s.do("delete_task", func() error {
		res, err := s.db.ExecContext(ctx, `
			DELETE FROM todos
			WHERE id = $1 AND user_id = $2
		`, taskID, ownerID)
		if err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return requireAffected(res)
	})
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
