// Package domain defines the canonical service interfaces the API layer and
// the CLI depend on. Consumers should depend on these interfaces rather than
// re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/google/uuid"

	"github.com/applytrail/applytrail/internal/models"
)

// SessionService defines anonymous session and user operations.
type SessionService interface {
	CreateAnonymousSession(ctx context.Context, req models.CreateSessionRequest) (*models.Session, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// CatalogService defines operations on the shared company and role catalog.
type CatalogService interface {
	ListCompanies(ctx context.Context, prefix string, limit, offset int) ([]models.Company, bool, error)
	GetCompany(ctx context.Context, id int64) (*models.Company, error)
	CreateCompany(ctx context.Context, userID uuid.UUID, req models.CreateCompanyRequest) (*models.Company, error)
	ListRoles(ctx context.Context, companyID int64, limit, offset int) ([]models.Role, bool, error)
	GetRole(ctx context.Context, id int64) (*models.RoleWithCompany, error)
	CreateRole(ctx context.Context, userID uuid.UUID, req models.CreateRoleRequest) (*models.Role, error)
}

// ApplicationService defines owner-scoped application operations.
type ApplicationService interface {
	ListApplications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.ApplicationSummary, bool, error)
	GetApplication(ctx context.Context, userID uuid.UUID, id int64) (*models.ApplicationDetail, error)
	CreateApplication(ctx context.Context, userID uuid.UUID, req models.CreateApplicationRequest) (*models.ApplicationDetail, error)
	DeleteApplication(ctx context.Context, userID uuid.UUID, id int64) error
}

// StageService defines stage operations. Every mutation is checked against
// the chronology rules before it is stored.
type StageService interface {
	ListStages(ctx context.Context, userID uuid.UUID, appID int64) ([]models.Stage, error)
	CreateStage(ctx context.Context, userID uuid.UUID, appID int64, req models.StageRequest) (*models.Stage, error)
	UpdateStage(ctx context.Context, userID uuid.UUID, appID, stageID int64, req models.StageRequest) (*models.Stage, error)
	DeleteStage(ctx context.Context, userID uuid.UUID, appID, stageID int64) error
}

// TaskService defines owner-scoped task operations.
type TaskService interface {
	ListTasks(ctx context.Context, userID uuid.UUID, f models.TaskFilter) ([]models.Task, bool, error)
	CreateTask(ctx context.Context, userID uuid.UUID, req models.TaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, userID uuid.UUID, id int64, req models.TaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, userID uuid.UUID, id int64) error
}

// WorldService defines the aggregate world view of a role.
type WorldService interface {
	World(ctx context.Context, roleID int64) (*models.WorldView, error)
}

// ActivityRecorder is the minimal interface for recording activity entries.
// Used by the activity worker for fire-and-forget logging of mutations.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, userID uuid.UUID, action, entityType, entityID string, detail map[string]any) error
}

// ActivityService defines activity feed queries and maintenance.
type ActivityService interface {
	ListActivity(ctx context.Context, userID uuid.UUID, q models.ActivityQuery) ([]models.ActivityEntry, bool, error)
	PurgeActivity(ctx context.Context, retentionDays int) (int, error)
}
