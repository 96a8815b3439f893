package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nbelkacem/gestia/internal/db"
	"github.com/nbelkacem/gestia/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo over db.DBTX.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, owner_id, title, description, start_date, due_date, priority, status, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.OwnerID,
		p.Title,
		nullableStringToValue(p.Description),
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.DueDate, dateLayout),
		string(p.Priority),
		string(p.Status),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanProject(row)
}

func (r *SQLiteProjectRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProjectFromRows(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) ExistsByTitle(ctx context.Context, ownerID, title string) (bool, error) {
	query := `SELECT COUNT(*) FROM projects WHERE owner_id = ? AND title = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, query, ownerID, title).Scan(&n); err != nil {
		return false, fmt.Errorf("checking project title: %w", err)
	}
	return n > 0, nil
}

func scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var priorityStr, statusStr, createdAtStr, updatedAtStr string
	var descStr, startDateStr, dueDateStr sql.NullString

	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &descStr,
		&startDateStr, &dueDateStr,
		&priorityStr, &statusStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return buildProject(&p, descStr, startDateStr, dueDateStr, priorityStr, statusStr, createdAtStr, updatedAtStr)
}

func scanProjectFromRows(rows *sql.Rows) (*domain.Project, error) {
	var p domain.Project
	var priorityStr, statusStr, createdAtStr, updatedAtStr string
	var descStr, startDateStr, dueDateStr sql.NullString

	err := rows.Scan(
		&p.ID, &p.OwnerID, &p.Title, &descStr,
		&startDateStr, &dueDateStr,
		&priorityStr, &statusStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning project row: %w", err)
	}
	return buildProject(&p, descStr, startDateStr, dueDateStr, priorityStr, statusStr, createdAtStr, updatedAtStr)
}

func buildProject(p *domain.Project, desc, startDate, dueDate sql.NullString, priority, status, createdAt, updatedAt string) (*domain.Project, error) {
	p.Description = nullStringPtr(desc)
	p.StartDate = parseNullableTime(startDate, dateLayout)
	p.DueDate = parseNullableTime(dueDate, dateLayout)
	p.Priority = domain.Priority(priority)
	p.Status = domain.ProjectStatus(status)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return p, nil
}
