package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/applytrail/applytrail/internal/domain"
	"github.com/applytrail/applytrail/internal/metrics"
	"github.com/applytrail/applytrail/internal/models"
	"github.com/applytrail/applytrail/internal/world"
)

// RoleReader loads a role with its company.
type RoleReader interface {
	GetRole(ctx context.Context, id int64) (*models.RoleWithCompany, error)
}

// ApplicationCounter counts the applications to a role across all users.
type ApplicationCounter interface {
	CountApplicationsForRole(ctx context.Context, roleID int64) (int, error)
}

// WorldRowSource lists the stage events of every application to a role,
// application id descending and date ascending.
type WorldRowSource interface {
	ListWorldRows(ctx context.Context, roleID int64) ([]world.Row, error)
}

// Compile-time check: *WorldService must satisfy domain.WorldService.
var _ domain.WorldService = (*WorldService)(nil)

// WorldService builds the aggregate transition graph of a role.
type WorldService struct {
	roles  RoleReader
	counts ApplicationCounter
	rows   WorldRowSource
	log    *logrus.Logger
}

// NewWorldService creates a WorldService.
func NewWorldService(roles RoleReader, counts ApplicationCounter, rows WorldRowSource, log *logrus.Logger) *WorldService {
	return &WorldService{roles: roles, counts: counts, rows: rows, log: log}
}

// World loads the role, its application count and its stage rows
// concurrently, then folds the rows into a graph.
func (s *WorldService) World(ctx context.Context, roleID int64) (*models.WorldView, error) {
	var (
		role  *models.RoleWithCompany
		count int
		rows  []world.Row
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		role, err = s.roles.GetRole(gctx, roleID)
		return err
	})

	g.Go(func() error {
		var err error
		count, err = s.counts.CountApplicationsForRole(gctx, roleID)
		return err
	})

	g.Go(func() error {
		var err error
		rows, err = s.rows.ListWorldRows(gctx, roleID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sorted, err := world.Sorted(rows)
	if err != nil {
		return nil, fmt.Errorf("role %d: %w", roleID, err)
	}

	graph := world.Build(sorted)

	metrics.WorldGraphsTotal.Inc()
	metrics.WorldGraphEdges.Observe(float64(len(graph.Edges)))

	s.log.WithFields(logrus.Fields{
		"role_id": roleID,
		"rows":    sorted.Len(),
		"nodes":   len(graph.Nodes),
		"edges":   len(graph.Edges),
	}).Debug("world graph built")

	return &models.WorldView{Role: *role, ApplicationCount: count, Graph: graph}, nil
}
