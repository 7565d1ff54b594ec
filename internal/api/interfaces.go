package api

import "github.com/applytrail/applytrail/internal/domain"

// The handlers depend on the canonical service interfaces.
type (
	SessionRepository     = domain.SessionService
	CatalogRepository     = domain.CatalogService
	ApplicationRepository = domain.ApplicationService
	StageRepository       = domain.StageService
	TaskRepository        = domain.TaskService
	WorldRepository       = domain.WorldService
	ActivityRepository    = domain.ActivityService
)
