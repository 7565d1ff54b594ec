package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/applytrail/applytrail/internal/models"
)

// CompanyStore provides company operations. Companies are shared by all users.
type CompanyStore struct {
	Base
}

// NewCompanyStore creates a new CompanyStore.
func NewCompanyStore(base Base) *CompanyStore {
	return &CompanyStore{Base: base}
}

// ListCompanies returns companies ordered by name, optionally filtered by a
// case-insensitive name prefix.
func (s *CompanyStore) ListCompanies(ctx context.Context, prefix string, limit, offset int) ([]models.Company, bool, error) {
	limit, offset = clampPage(limit, offset)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := "SELECT " + companyColumns + " FROM companies"
	args := make([]any, 0, 3)

	if prefix = strings.TrimSpace(prefix); prefix != "" {
		query += " WHERE lower(name) LIKE $1 || '%'"
		args = append(args, strings.ToLower(escapeLike(prefix)))
	}

	query += fmt.Sprintf(" ORDER BY lower(name), id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit+1, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying companies: %w", err)
	}
	defer rows.Close()

	companies, err := collect(rows, "company", scanCompany)
	if err != nil {
		return nil, false, err
	}

	companies, hasMore := trimPage(companies, limit)

	return companies, hasMore, nil
}

// GetCompany returns a company by ID.
func (s *CompanyStore) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	c, err := scanCompany(s.Pool.QueryRow(ctx,
		"SELECT "+companyColumns+" FROM companies WHERE id = $1", id,
	).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCompanyNotFound
		}

		return nil, fmt.Errorf("getting company: %w", err)
	}

	return c, nil
}

// CreateCompany inserts a company. Names are unique case-insensitively.
func (s *CompanyStore) CreateCompany(ctx context.Context, req models.CreateCompanyRequest) (*models.Company, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	c, err := scanCompany(s.Pool.QueryRow(ctx,
		"INSERT INTO companies (name, url) VALUES ($1, $2) RETURNING "+companyColumns,
		req.Name, req.URL,
	).Scan)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("inserting company: %w", err)
	}

	return c, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
