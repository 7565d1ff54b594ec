package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/applytrail/applytrail/internal/models"
)

// purgeBatchSize limits the rows deleted per statement so a purge never holds
// long locks on activity_log.
const purgeBatchSize = 5000

// ActivityStore provides data access for the activity_log table.
type ActivityStore struct {
	Base
}

// NewActivityStore creates an ActivityStore.
func NewActivityStore(base Base) *ActivityStore {
	return &ActivityStore{Base: base}
}

// RecordActivity inserts an activity entry for the user.
func (s *ActivityStore) RecordActivity(
	ctx context.Context,
	userID uuid.UUID,
	action, entityType, entityID string,
	detail map[string]any,
) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var detailJSON []byte
	if detail != nil {
		var err error
		if detailJSON, err = json.Marshal(detail); err != nil {
			return fmt.Errorf("marshaling activity detail: %w", err)
		}
	}

	_, err := s.Pool.Exec(ctx,
		`INSERT INTO activity_log (user_id, action, entity_type, entity_id, detail)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, action, entityType, entityID, detailJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting activity entry: %w", err)
	}

	return nil
}

// ListActivity returns the user's activity entries, newest first.
func (s *ActivityStore) ListActivity(
	ctx context.Context,
	userID uuid.UUID,
	q models.ActivityQuery,
) ([]models.ActivityEntry, bool, error) {
	limit, offset := clampPage(q.Limit, q.Offset)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := "SELECT id, action, entity_type, entity_id, detail, created_at FROM activity_log WHERE user_id = $1"
	args := []any{userID}

	if q.EntityType != "" {
		args = append(args, q.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}

	if q.Since != nil {
		args = append(args, *q.Since)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit+1, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying activity log: %w", err)
	}
	defer rows.Close()

	entries, err := collect(rows, "activity", func(scan func(dest ...any) error) (*models.ActivityEntry, error) {
		var (
			e          models.ActivityEntry
			detailJSON []byte
		)

		if err := scan(&e.ID, &e.Action, &e.EntityType, &e.EntityID, &detailJSON, &e.CreatedAt); err != nil {
			return nil, err
		}

		if detailJSON != nil {
			if err := json.Unmarshal(detailJSON, &e.Detail); err != nil {
				s.Log.WithError(err).WithField("activity_id", e.ID).Warn("failed to unmarshal activity detail")
			}
		}

		return &e, nil
	})
	if err != nil {
		return nil, false, err
	}

	entries, hasMore := trimPage(entries, limit)

	return entries, hasMore, nil
}

// PurgeActivity deletes entries older than retentionDays across all users,
// in batches, and returns how many were removed.
func (s *ActivityStore) PurgeActivity(ctx context.Context, retentionDays int) (int, error) {
	var total int

	for {
		batchCtx, cancel := withTimeout(ctx)

		tag, err := s.Pool.Exec(batchCtx,
			`DELETE FROM activity_log WHERE id IN (
			     SELECT id FROM activity_log
			     WHERE created_at < now() - make_interval(days => $1)
			     LIMIT $2
			 )`,
			retentionDays, purgeBatchSize,
		)
		cancel()

		if err != nil {
			return total, fmt.Errorf("purging activity log: %w", err)
		}

		deleted := int(tag.RowsAffected())
		total += deleted

		if deleted < purgeBatchSize {
			return total, nil
		}
	}
}
