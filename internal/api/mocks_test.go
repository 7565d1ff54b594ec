package api_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/applytrail/applytrail/internal/models"
)

// mockSessionRepo implements api.SessionRepository for testing.
type mockSessionRepo struct {
	createFn func(ctx context.Context, req models.CreateSessionRequest) (*models.Session, error)
	getFn    func(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

func (m *mockSessionRepo) CreateAnonymousSession(ctx context.Context, req models.CreateSessionRequest) (*models.Session, error) {
	return m.createFn(ctx, req)
}

func (m *mockSessionRepo) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return m.getFn(ctx, userID)
}

// mockCatalogRepo implements api.CatalogRepository for testing.
type mockCatalogRepo struct {
	listCompaniesFn func(ctx context.Context, prefix string, limit, offset int) ([]models.Company, bool, error)
	getCompanyFn    func(ctx context.Context, id int64) (*models.Company, error)
	createCompanyFn func(ctx context.Context, userID uuid.UUID, req models.CreateCompanyRequest) (*models.Company, error)
	listRolesFn     func(ctx context.Context, companyID int64, limit, offset int) ([]models.Role, bool, error)
	getRoleFn       func(ctx context.Context, id int64) (*models.RoleWithCompany, error)
	createRoleFn    func(ctx context.Context, userID uuid.UUID, req models.CreateRoleRequest) (*models.Role, error)
}

func (m *mockCatalogRepo) ListCompanies(ctx context.Context, prefix string, limit, offset int) ([]models.Company, bool, error) {
	return m.listCompaniesFn(ctx, prefix, limit, offset)
}

func (m *mockCatalogRepo) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	return m.getCompanyFn(ctx, id)
}

func (m *mockCatalogRepo) CreateCompany(ctx context.Context, userID uuid.UUID, req models.CreateCompanyRequest) (*models.Company, error) {
	return m.createCompanyFn(ctx, userID, req)
}

func (m *mockCatalogRepo) ListRoles(ctx context.Context, companyID int64, limit, offset int) ([]models.Role, bool, error) {
	return m.listRolesFn(ctx, companyID, limit, offset)
}

func (m *mockCatalogRepo) GetRole(ctx context.Context, id int64) (*models.RoleWithCompany, error) {
	return m.getRoleFn(ctx, id)
}

func (m *mockCatalogRepo) CreateRole(ctx context.Context, userID uuid.UUID, req models.CreateRoleRequest) (*models.Role, error) {
	return m.createRoleFn(ctx, userID, req)
}

// mockApplicationRepo implements api.ApplicationRepository for testing.
type mockApplicationRepo struct {
	listFn   func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.ApplicationSummary, bool, error)
	getFn    func(ctx context.Context, userID uuid.UUID, id int64) (*models.ApplicationDetail, error)
	createFn func(ctx context.Context, userID uuid.UUID, req models.CreateApplicationRequest) (*models.ApplicationDetail, error)
	deleteFn func(ctx context.Context, userID uuid.UUID, id int64) error
}

func (m *mockApplicationRepo) ListApplications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.ApplicationSummary, bool, error) {
	return m.listFn(ctx, userID, limit, offset)
}

func (m *mockApplicationRepo) GetApplication(ctx context.Context, userID uuid.UUID, id int64) (*models.ApplicationDetail, error) {
	return m.getFn(ctx, userID, id)
}

func (m *mockApplicationRepo) CreateApplication(ctx context.Context, userID uuid.UUID, req models.CreateApplicationRequest) (*models.ApplicationDetail, error) {
	return m.createFn(ctx, userID, req)
}

func (m *mockApplicationRepo) DeleteApplication(ctx context.Context, userID uuid.UUID, id int64) error {
	return m.deleteFn(ctx, userID, id)
}

// mockStageRepo implements api.StageRepository for testing.
type mockStageRepo struct {
	listFn   func(ctx context.Context, userID uuid.UUID, appID int64) ([]models.Stage, error)
	createFn func(ctx context.Context, userID uuid.UUID, appID int64, req models.StageRequest) (*models.Stage, error)
	updateFn func(ctx context.Context, userID uuid.UUID, appID, stageID int64, req models.StageRequest) (*models.Stage, error)
	deleteFn func(ctx context.Context, userID uuid.UUID, appID, stageID int64) error
}

func (m *mockStageRepo) ListStages(ctx context.Context, userID uuid.UUID, appID int64) ([]models.Stage, error) {
	return m.listFn(ctx, userID, appID)
}

func (m *mockStageRepo) CreateStage(ctx context.Context, userID uuid.UUID, appID int64, req models.StageRequest) (*models.Stage, error) {
	return m.createFn(ctx, userID, appID, req)
}

func (m *mockStageRepo) UpdateStage(ctx context.Context, userID uuid.UUID, appID, stageID int64, req models.StageRequest) (*models.Stage, error) {
	return m.updateFn(ctx, userID, appID, stageID, req)
}

func (m *mockStageRepo) DeleteStage(ctx context.Context, userID uuid.UUID, appID, stageID int64) error {
	return m.deleteFn(ctx, userID, appID, stageID)
}

// mockTaskRepo implements api.TaskRepository for testing.
type mockTaskRepo struct {
	listFn   func(ctx context.Context, userID uuid.UUID, f models.TaskFilter) ([]models.Task, bool, error)
	createFn func(ctx context.Context, userID uuid.UUID, req models.TaskRequest) (*models.Task, error)
	updateFn func(ctx context.Context, userID uuid.UUID, id int64, req models.TaskRequest) (*models.Task, error)
	deleteFn func(ctx context.Context, userID uuid.UUID, id int64) error
}

func (m *mockTaskRepo) ListTasks(ctx context.Context, userID uuid.UUID, f models.TaskFilter) ([]models.Task, bool, error) {
	return m.listFn(ctx, userID, f)
}

func (m *mockTaskRepo) CreateTask(ctx context.Context, userID uuid.UUID, req models.TaskRequest) (*models.Task, error) {
	return m.createFn(ctx, userID, req)
}

func (m *mockTaskRepo) UpdateTask(ctx context.Context, userID uuid.UUID, id int64, req models.TaskRequest) (*models.Task, error) {
	return m.updateFn(ctx, userID, id, req)
}

func (m *mockTaskRepo) DeleteTask(ctx context.Context, userID uuid.UUID, id int64) error {
	return m.deleteFn(ctx, userID, id)
}

// mockWorldRepo implements api.WorldRepository for testing.
type mockWorldRepo struct {
	worldFn func(ctx context.Context, roleID int64) (*models.WorldView, error)
}

func (m *mockWorldRepo) World(ctx context.Context, roleID int64) (*models.WorldView, error) {
	return m.worldFn(ctx, roleID)
}

// mockActivityRepo implements api.ActivityRepository for testing.
type mockActivityRepo struct {
	listFn func(ctx context.Context, userID uuid.UUID, q models.ActivityQuery) ([]models.ActivityEntry, bool, error)
}

func (m *mockActivityRepo) ListActivity(ctx context.Context, userID uuid.UUID, q models.ActivityQuery) ([]models.ActivityEntry, bool, error) {
	return m.listFn(ctx, userID, q)
}

func (m *mockActivityRepo) PurgeActivity(context.Context, int) (int, error) {
	return 0, nil
}
