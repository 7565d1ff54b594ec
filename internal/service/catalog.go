package service

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/domain"
	"github.com/applytrail/applytrail/internal/models"
)

// CompanyStore is the data-access interface for companies.
type CompanyStore interface {
	ListCompanies(ctx context.Context, prefix string, limit, offset int) ([]models.Company, bool, error)
	GetCompany(ctx context.Context, id int64) (*models.Company, error)
	CreateCompany(ctx context.Context, req models.CreateCompanyRequest) (*models.Company, error)
}

// RoleStore is the data-access interface for roles.
type RoleStore interface {
	ListRoles(ctx context.Context, companyID int64, limit, offset int) ([]models.Role, bool, error)
	GetRole(ctx context.Context, id int64) (*models.RoleWithCompany, error)
	CreateRole(ctx context.Context, req models.CreateRoleRequest) (*models.Role, error)
}

// Compile-time check: *CatalogService must satisfy domain.CatalogService.
var _ domain.CatalogService = (*CatalogService)(nil)

// CatalogService manages the company and role catalog shared by all users.
type CatalogService struct {
	companies CompanyStore
	roles     RoleStore
	activity  ActivityEnqueuer
	log       *logrus.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(companies CompanyStore, roles RoleStore, activity ActivityEnqueuer, log *logrus.Logger) *CatalogService {
	return &CatalogService{companies: companies, roles: roles, activity: activity, log: log}
}

// ListCompanies returns a page of companies (pass-through).
func (s *CatalogService) ListCompanies(ctx context.Context, prefix string, limit, offset int) ([]models.Company, bool, error) {
	return s.companies.ListCompanies(ctx, prefix, limit, offset)
}

// GetCompany returns a company by ID (pass-through).
func (s *CatalogService) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	return s.companies.GetCompany(ctx, id)
}

// CreateCompany creates a company and records who added it.
func (s *CatalogService) CreateCompany(ctx context.Context, userID uuid.UUID, req models.CreateCompanyRequest) (*models.Company, error) {
	c, err := s.companies.CreateCompany(ctx, req)
	if err != nil {
		return nil, err
	}

	recordActivity(s.activity, userID, "company.create", "company", strconv.FormatInt(c.ID, 10),
		map[string]any{"name": c.Name})

	return c, nil
}

// ListRoles returns a page of roles (pass-through).
func (s *CatalogService) ListRoles(ctx context.Context, companyID int64, limit, offset int) ([]models.Role, bool, error) {
	return s.roles.ListRoles(ctx, companyID, limit, offset)
}

// GetRole returns a role with its company (pass-through).
func (s *CatalogService) GetRole(ctx context.Context, id int64) (*models.RoleWithCompany, error) {
	return s.roles.GetRole(ctx, id)
}

// CreateRole creates a role and records who added it.
func (s *CatalogService) CreateRole(ctx context.Context, userID uuid.UUID, req models.CreateRoleRequest) (*models.Role, error) {
	r, err := s.roles.CreateRole(ctx, req)
	if err != nil {
		return nil, err
	}

	recordActivity(s.activity, userID, "role.create", "role", strconv.FormatInt(r.ID, 10),
		map[string]any{"company_id": r.CompanyID, "title": r.Title})

	return r, nil
}
