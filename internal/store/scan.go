package store

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/applytrail/applytrail/internal/models"
)

// companyColumns lists the columns selected for company queries.
const companyColumns = `id, name, url, created_at`

// roleColumns lists the columns selected for role queries.
const roleColumns = `id, company_id, title, year, url, created_at`

// stageColumns lists the columns selected for stage queries.
const stageColumns = `id, application_id, type::text, date, emoji_unicode_hex, remark,
	created_at, updated_at`

// taskColumns lists the columns selected for task queries.
const taskColumns = `id, user_id, application_id, title, due_date, notify_on_due,
	completed, created_at, updated_at`

// scanCompany scans a single row into a models.Company.
func scanCompany(scan func(dest ...any) error) (*models.Company, error) {
	var c models.Company

	if err := scan(&c.ID, &c.Name, &c.URL, &c.CreatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

// scanRole scans a single row into a models.Role.
func scanRole(scan func(dest ...any) error) (*models.Role, error) {
	var r models.Role

	if err := scan(&r.ID, &r.CompanyID, &r.Title, &r.Year, &r.URL, &r.CreatedAt); err != nil {
		return nil, err
	}

	return &r, nil
}

// scanStage scans a single row into a models.Stage.
func scanStage(scan func(dest ...any) error) (*models.Stage, error) {
	var s models.Stage
	var typ string

	err := scan(
		&s.ID,
		&s.ApplicationID,
		&typ,
		&s.Date,
		&s.EmojiUnicodeHex,
		&s.Remark,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Type, err = models.ParseStageType(typ)
	if err != nil {
		return nil, fmt.Errorf("stage %d: %w", s.ID, err)
	}

	return &s, nil
}

// scanTask scans a single row into a models.Task.
func scanTask(scan func(dest ...any) error) (*models.Task, error) {
	var t models.Task

	err := scan(
		&t.ID,
		&t.UserID,
		&t.ApplicationID,
		&t.Title,
		&t.DueDate,
		&t.NotifyOnDue,
		&t.Completed,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// collect scans all rows with scanFn.
func collect[T any](rows pgx.Rows, what string, scanFn func(func(dest ...any) error) (*T, error)) ([]T, error) {
	items := make([]T, 0, 16)

	for rows.Next() {
		item, err := scanFn(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", what, err)
		}

		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", what, err)
	}

	return items, nil
}
