package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/dbpool"
)

// StatsHandler serves the per-user funnel statistics endpoint.
type StatsHandler struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

// NewStatsHandler creates a StatsHandler with the given dependencies.
func NewStatsHandler(pool *dbpool.Pool, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{pool: pool, log: log}
}

// statsResponse is the JSON payload returned by the stats endpoint.
type statsResponse struct {
	Applications     int `json:"applications"`
	OpenApplications int `json:"open_applications"`
	Offers           int `json:"offers"`
	Accepted         int `json:"accepted"`
	Rejected         int `json:"rejected"`
	Withdrawn        int `json:"withdrawn"`
	OpenTasks        int `json:"open_tasks"`
	OverdueTasks     int `json:"overdue_tasks"`
}

// GetStats handles GET /api/v1/stats.
func (h *StatsHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := getUserID(c)
	if !ok {
		return
	}

	tx, err := h.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		h.log.WithError(err).Error("stats: begin tx")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}
	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	var resp statsResponse

	// Single consolidated query over the user's applications and tasks.
	if err := tx.QueryRow(ctx,
		`WITH outcome AS (
			SELECT a.id,
				bool_or(s.type = 'OFFERED')   AS offered,
				bool_or(s.type = 'ACCEPTED')  AS accepted,
				bool_or(s.type = 'REJECTED')  AS rejected,
				bool_or(s.type = 'WITHDRAWN') AS withdrawn
			FROM applications a
			JOIN stages s ON s.application_id = a.id
			WHERE a.user_id = $1
			GROUP BY a.id
		)
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT (accepted OR rejected OR withdrawn)),
			COUNT(*) FILTER (WHERE offered),
			COUNT(*) FILTER (WHERE accepted),
			COUNT(*) FILTER (WHERE rejected),
			COUNT(*) FILTER (WHERE withdrawn),
			(SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND NOT completed),
			(SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND NOT completed AND due_date < now())
		FROM outcome`,
		userID,
	).Scan(
		&resp.Applications, &resp.OpenApplications, &resp.Offers,
		&resp.Accepted, &resp.Rejected, &resp.Withdrawn,
		&resp.OpenTasks, &resp.OverdueTasks,
	); err != nil {
		h.log.WithError(err).Error("stats: consolidated query")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, resp)
}
