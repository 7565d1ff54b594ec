package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/applytrail/applytrail/internal/models"
)

// ApplicationStore provides owner-scoped application operations.
type ApplicationStore struct {
	Base
}

// NewApplicationStore creates a new ApplicationStore.
func NewApplicationStore(base Base) *ApplicationStore {
	return &ApplicationStore{Base: base}
}

// ListApplications returns the user's applications, newest first, each with
// its role, company and latest stage.
func (s *ApplicationStore) ListApplications(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]models.ApplicationSummary, bool, error) {
	limit, offset = clampPage(limit, offset)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT a.id, a.user_id, a.role_id, a.created_at, r.title, c.id, c.name,
		        ls.type::text, ls.date
		 FROM applications a
		 JOIN roles r ON r.id = a.role_id
		 JOIN companies c ON c.id = r.company_id
		 LEFT JOIN LATERAL (
		     SELECT s.type, s.date FROM stages s
		     WHERE s.application_id = a.id
		     ORDER BY s.date DESC, s.id DESC
		     LIMIT 1
		 ) ls ON true
		 WHERE a.user_id = $1
		 ORDER BY a.id DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit+1, offset,
	)
	if err != nil {
		return nil, false, fmt.Errorf("querying applications: %w", err)
	}
	defer rows.Close()

	apps, err := collect(rows, "application", scanApplicationSummary)
	if err != nil {
		return nil, false, err
	}

	apps, hasMore := trimPage(apps, limit)

	return apps, hasMore, nil
}

func scanApplicationSummary(scan func(dest ...any) error) (*models.ApplicationSummary, error) {
	var (
		a          models.ApplicationSummary
		latest     *string
		latestDate *time.Time
	)

	err := scan(&a.ID, &a.UserID, &a.RoleID, &a.CreatedAt, &a.RoleTitle, &a.CompanyID, &a.CompanyName,
		&latest, &latestDate)
	if err != nil {
		return nil, err
	}

	if latest != nil {
		t, err := models.ParseStageType(*latest)
		if err != nil {
			return nil, fmt.Errorf("application %d: %w", a.ID, err)
		}

		a.LatestStage = &t
		a.LatestDate = latestDate
	}

	return &a, nil
}

// GetApplication returns one of the user's applications with its role and
// its stages in date order.
func (s *ApplicationStore) GetApplication(ctx context.Context, userID uuid.UUID, id int64) (*models.ApplicationDetail, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var d models.ApplicationDetail

	err = tx.QueryRow(ctx,
		`SELECT a.id, a.user_id, a.role_id, a.created_at,
		        r.id, r.company_id, r.title, r.year, r.url, r.created_at,
		        c.id, c.name, c.url, c.created_at
		 FROM applications a
		 JOIN roles r ON r.id = a.role_id
		 JOIN companies c ON c.id = r.company_id
		 WHERE a.id = $1 AND a.user_id = $2`,
		id, userID,
	).Scan(
		&d.ID, &d.UserID, &d.RoleID, &d.CreatedAt,
		&d.Role.ID, &d.Role.CompanyID, &d.Role.Title, &d.Role.Year, &d.Role.URL, &d.Role.CreatedAt,
		&d.Role.Company.ID, &d.Role.Company.Name, &d.Role.Company.URL, &d.Role.Company.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrApplicationNotFound
		}

		return nil, fmt.Errorf("getting application: %w", err)
	}

	d.Stages, err = loadStages(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing read: %w", err)
	}

	return &d, nil
}

// CreateApplication inserts an application together with its APPLIED stage.
// check sees the initial stage set and can veto the insert.
func (s *ApplicationStore) CreateApplication(
	ctx context.Context,
	userID uuid.UUID,
	req models.CreateApplicationRequest,
	check models.StageCheck,
) (*models.ApplicationDetail, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var app models.Application

	err = tx.QueryRow(ctx,
		`INSERT INTO applications (user_id, role_id) VALUES ($1, $2)
		 RETURNING id, user_id, role_id, created_at`,
		userID, req.RoleID,
	).Scan(&app.ID, &app.UserID, &app.RoleID, &app.CreatedAt)
	if err != nil {
		switch pgErrCode(err) {
		case pgUniqueViolation:
			return nil, models.ErrDuplicateKey
		case pgForeignKeyViolation:
			return nil, fmt.Errorf("role %d: %w", req.RoleID, models.ErrRoleNotFound)
		}

		return nil, fmt.Errorf("inserting application: %w", err)
	}

	first := req.FirstStage()
	if err := check([]models.Stage{{Type: first.Type, Date: first.Date}}); err != nil {
		return nil, err
	}

	stage, err := insertStage(ctx, tx, app.ID, first)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing application: %w", err)
	}

	return &models.ApplicationDetail{Application: app, Stages: []models.Stage{*stage}}, nil
}

// DeleteApplication removes one of the user's applications and its stages.
func (s *ApplicationStore) DeleteApplication(ctx context.Context, userID uuid.UUID, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, "DELETE FROM applications WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("deleting application: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrApplicationNotFound
	}

	return nil
}

// CountApplicationsForRole returns how many applications, across all users,
// target the role.
func (s *ApplicationStore) CountApplicationsForRole(ctx context.Context, roleID int64) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var n int
	if err := s.Pool.QueryRow(ctx, "SELECT count(*) FROM applications WHERE role_id = $1", roleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting applications: %w", err)
	}

	return n, nil
}
