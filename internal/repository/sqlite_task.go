package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nbelkacem/gestia/internal/db"
	"github.com/nbelkacem/gestia/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo over db.DBTX.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, activity_id, title, description, status, priority, estimated_hours, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ActivityID,
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		nullableFloatToValue(t.EstimatedHours),
		nullableTimeToString(t.DueDate, dateLayout),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) ListByActivity(ctx context.Context, activityID string) ([]*domain.Task, error) {
	query := `SELECT id, activity_id, title, description, status, priority, estimated_hours, due_date, created_at, updated_at
		FROM tasks WHERE activity_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, activityID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// CountByProject counts all tasks of a project and how many are done, where
// done means completed or finalized.
func (r *SQLiteTaskRepo) CountByProject(ctx context.Context, projectID string) (total, done int, err error) {
	query := `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN t.status IN ('completed','finalized') THEN 1 ELSE 0 END), 0)
		FROM tasks t
		JOIN activities a ON a.id = t.activity_id
		WHERE a.project_id = ?`
	if err := r.db.QueryRowContext(ctx, query, projectID).Scan(&total, &done); err != nil {
		return 0, 0, fmt.Errorf("counting tasks: %w", err)
	}
	return total, done, nil
}

func scanTask(rows *sql.Rows) (*domain.Task, error) {
	var t domain.Task
	var statusStr, priorityStr, createdAtStr, updatedAtStr string
	var dueDateStr sql.NullString
	var hours sql.NullFloat64

	err := rows.Scan(&t.ID, &t.ActivityID, &t.Title, &t.Description, &statusStr, &priorityStr, &hours, &dueDateStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.Status = domain.TaskStatus(statusStr)
	t.Priority = domain.Priority(priorityStr)
	t.EstimatedHours = nullFloatPtr(hours)
	t.DueDate = parseNullableTime(dueDateStr, dateLayout)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &t, nil
}
