package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/applytrail/applytrail/internal/models"
	"github.com/applytrail/applytrail/internal/world"
)

// StageStore provides stage operations. Every write runs with the parent
// application row locked so concurrent edits see each other's results.
type StageStore struct {
	Base
}

// NewStageStore creates a new StageStore.
func NewStageStore(base Base) *StageStore {
	return &StageStore{Base: base}
}

// ListStages returns the stages of one of the user's applications in date order.
func (s *StageStore) ListStages(ctx context.Context, userID uuid.UUID, appID int64) ([]models.Stage, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var id int64

	err = tx.QueryRow(ctx, "SELECT id FROM applications WHERE id = $1 AND user_id = $2", appID, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrApplicationNotFound
		}

		return nil, fmt.Errorf("checking application: %w", err)
	}

	stages, err := loadStages(ctx, tx, appID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing read: %w", err)
	}

	return stages, nil
}

// CreateStage adds a stage to one of the user's applications if check
// accepts the resulting set.
func (s *StageStore) CreateStage(
	ctx context.Context,
	userID uuid.UUID,
	appID int64,
	req models.StageRequest,
	check models.StageCheck,
) (*models.Stage, error) {
	var created *models.Stage

	err := s.withLockedStages(ctx, userID, appID, func(tx pgx.Tx, stages []models.Stage) error {
		candidate := append(slices.Clone(stages), models.Stage{ApplicationID: appID, Type: req.Type, Date: req.Date})
		if err := check(candidate); err != nil {
			return err
		}

		var err error
		created, err = insertStage(ctx, tx, appID, req)

		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateStage replaces a stage of one of the user's applications if check
// accepts the resulting set.
func (s *StageStore) UpdateStage(
	ctx context.Context,
	userID uuid.UUID,
	appID, stageID int64,
	req models.StageRequest,
	check models.StageCheck,
) (*models.Stage, error) {
	var updated *models.Stage

	err := s.withLockedStages(ctx, userID, appID, func(tx pgx.Tx, stages []models.Stage) error {
		i := slices.IndexFunc(stages, func(st models.Stage) bool { return st.ID == stageID })
		if i < 0 {
			return models.ErrStageNotFound
		}

		candidate := slices.Clone(stages)
		candidate[i].Type = req.Type
		candidate[i].Date = req.Date

		if err := check(candidate); err != nil {
			return err
		}

		var err error
		updated, err = scanStage(tx.QueryRow(ctx,
			`UPDATE stages
			 SET type = $1::stage_type, date = $2, emoji_unicode_hex = $3, remark = $4, updated_at = now()
			 WHERE id = $5 AND application_id = $6
			 RETURNING `+stageColumns,
			string(req.Type), req.Date, req.EmojiUnicodeHex, req.Remark, stageID, appID,
		).Scan)
		if err != nil {
			return fmt.Errorf("updating stage: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteStage removes a stage of one of the user's applications if check
// accepts the remaining set.
func (s *StageStore) DeleteStage(ctx context.Context, userID uuid.UUID, appID, stageID int64, check models.StageCheck) error {
	return s.withLockedStages(ctx, userID, appID, func(tx pgx.Tx, stages []models.Stage) error {
		i := slices.IndexFunc(stages, func(st models.Stage) bool { return st.ID == stageID })
		if i < 0 {
			return models.ErrStageNotFound
		}

		if err := check(slices.Delete(slices.Clone(stages), i, i+1)); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, "DELETE FROM stages WHERE id = $1 AND application_id = $2", stageID, appID); err != nil {
			return fmt.Errorf("deleting stage: %w", err)
		}

		return nil
	})
}

// withLockedStages locks the application row, loads its stages and runs fn in
// the same transaction. The transaction commits only if fn returns nil.
func (s *StageStore) withLockedStages(
	ctx context.Context,
	userID uuid.UUID,
	appID int64,
	fn func(tx pgx.Tx, stages []models.Stage) error,
) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var id int64

	err = tx.QueryRow(ctx,
		"SELECT id FROM applications WHERE id = $1 AND user_id = $2 FOR UPDATE", appID, userID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrApplicationNotFound
		}

		return fmt.Errorf("locking application: %w", err)
	}

	stages, err := loadStages(ctx, tx, appID)
	if err != nil {
		return err
	}

	if err := fn(tx, stages); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing stage change: %w", err)
	}

	return nil
}

// ListWorldRows returns the stage events of every application to a role,
// grouped by application id descending and dated ascending within each.
func (s *StageStore) ListWorldRows(ctx context.Context, roleID int64) ([]world.Row, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT s.application_id, s.type::text, s.date
		 FROM stages s
		 JOIN applications a ON a.id = s.application_id
		 WHERE a.role_id = $1
		 ORDER BY s.application_id DESC, s.date ASC, s.id ASC`,
		roleID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying world rows: %w", err)
	}
	defer rows.Close()

	out := make([]world.Row, 0, 64)

	for rows.Next() {
		var (
			r   world.Row
			typ string
		)

		if err := rows.Scan(&r.ApplicationID, &typ, &r.Date); err != nil {
			return nil, fmt.Errorf("scanning world row: %w", err)
		}

		if r.Type, err = models.ParseStageType(typ); err != nil {
			return nil, fmt.Errorf("application %d: %w", r.ApplicationID, err)
		}

		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating world rows: %w", err)
	}

	return out, nil
}

// loadStages reads an application's stages inside tx.
func loadStages(ctx context.Context, tx pgx.Tx, appID int64) ([]models.Stage, error) {
	rows, err := tx.Query(ctx,
		"SELECT "+stageColumns+" FROM stages WHERE application_id = $1 ORDER BY date ASC, id ASC", appID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying stages: %w", err)
	}
	defer rows.Close()

	return collect(rows, "stage", scanStage)
}

// insertStage writes one stage inside tx.
func insertStage(ctx context.Context, tx pgx.Tx, appID int64, req models.StageRequest) (*models.Stage, error) {
	st, err := scanStage(tx.QueryRow(ctx,
		`INSERT INTO stages (application_id, type, date, emoji_unicode_hex, remark)
		 VALUES ($1, $2::stage_type, $3, $4, $5)
		 RETURNING `+stageColumns,
		appID, string(req.Type), req.Date, req.EmojiUnicodeHex, req.Remark,
	).Scan)
	if err != nil {
		return nil, fmt.Errorf("inserting stage: %w", err)
	}

	return st, nil
}
