package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/applytrail/applytrail/internal/models"
)

// RoleStore provides role operations. Roles are shared by all users.
type RoleStore struct {
	Base
}

// NewRoleStore creates a new RoleStore.
func NewRoleStore(base Base) *RoleStore {
	return &RoleStore{Base: base}
}

// ListRoles returns roles, optionally restricted to one company, newest first.
func (s *RoleStore) ListRoles(ctx context.Context, companyID int64, limit, offset int) ([]models.Role, bool, error) {
	limit, offset = clampPage(limit, offset)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := "SELECT " + roleColumns + " FROM roles"
	args := make([]any, 0, 3)

	if companyID > 0 {
		query += " WHERE company_id = $1"
		args = append(args, companyID)
	}

	query += fmt.Sprintf(" ORDER BY year DESC NULLS LAST, lower(title), id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit+1, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying roles: %w", err)
	}
	defer rows.Close()

	roles, err := collect(rows, "role", scanRole)
	if err != nil {
		return nil, false, err
	}

	roles, hasMore := trimPage(roles, limit)

	return roles, hasMore, nil
}

// GetRole returns a role joined with its company.
func (s *RoleStore) GetRole(ctx context.Context, id int64) (*models.RoleWithCompany, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rc models.RoleWithCompany

	err := s.Pool.QueryRow(ctx,
		`SELECT r.id, r.company_id, r.title, r.year, r.url, r.created_at,
		        c.id, c.name, c.url, c.created_at
		 FROM roles r JOIN companies c ON c.id = r.company_id
		 WHERE r.id = $1`, id,
	).Scan(
		&rc.ID, &rc.CompanyID, &rc.Title, &rc.Year, &rc.URL, &rc.CreatedAt,
		&rc.Company.ID, &rc.Company.Name, &rc.Company.URL, &rc.Company.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrRoleNotFound
		}

		return nil, fmt.Errorf("getting role: %w", err)
	}

	return &rc, nil
}

// CreateRole inserts a role under an existing company.
func (s *RoleStore) CreateRole(ctx context.Context, req models.CreateRoleRequest) (*models.Role, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	r, err := scanRole(s.Pool.QueryRow(ctx,
		"INSERT INTO roles (company_id, title, year, url) VALUES ($1, $2, $3, $4) RETURNING "+roleColumns,
		req.CompanyID, req.Title, req.Year, req.URL,
	).Scan)
	if err != nil {
		switch pgErrCode(err) {
		case pgUniqueViolation:
			return nil, models.ErrDuplicateKey
		case pgForeignKeyViolation:
			return nil, fmt.Errorf("company %d: %w", req.CompanyID, models.ErrCompanyNotFound)
		}

		return nil, fmt.Errorf("inserting role: %w", err)
	}

	return r, nil
}
