package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/domain"
)

// activityWriteTimeout bounds a single activity insert made by the worker.
const activityWriteTimeout = 5 * time.Second

// ActivityJob is a single activity entry waiting to be recorded.
type ActivityJob struct {
	UserID     uuid.UUID
	Action     string
	EntityType string
	EntityID   string
	Detail     map[string]any
}

// ActivityEnqueuer accepts activity jobs without blocking the caller.
type ActivityEnqueuer interface {
	Enqueue(job *ActivityJob)
}

// ActivityWorker buffers activity entries and writes them from a single goroutine.
type ActivityWorker struct {
	recorder domain.ActivityRecorder
	log      *logrus.Logger
	jobs     chan *ActivityJob
}

// NewActivityWorker creates an ActivityWorker with the given queue capacity.
func NewActivityWorker(recorder domain.ActivityRecorder, log *logrus.Logger, queueSize int) *ActivityWorker {
	if queueSize <= 0 {
		queueSize = 1000
	}
	return &ActivityWorker{
		recorder: recorder,
		log:      log,
		jobs:     make(chan *ActivityJob, queueSize),
	}
}

// Enqueue adds a job. It never blocks; the job is dropped if the queue is full.
func (w *ActivityWorker) Enqueue(job *ActivityJob) {
	select {
	case w.jobs <- job:
	default:
		w.log.WithField("action", job.Action).Warn("activity queue full, dropping entry")
	}
}

// Run records jobs until ctx is cancelled, then drains what is still queued.
func (w *ActivityWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case job := <-w.jobs:
			w.process(job)
		}
	}
}

func (w *ActivityWorker) drain() {
	for {
		select {
		case job := <-w.jobs:
			w.process(job)
		default:
			return
		}
	}
}

func (w *ActivityWorker) process(job *ActivityJob) {
	ctx, cancel := context.WithTimeout(context.Background(), activityWriteTimeout)
	defer cancel()

	if err := w.recorder.RecordActivity(ctx, job.UserID, job.Action, job.EntityType, job.EntityID, job.Detail); err != nil {
		w.log.WithError(err).WithField("action", job.Action).Warn("activity record failed")
	}
}

// recordActivity enqueues a job on q if q is set.
func recordActivity(q ActivityEnqueuer, userID uuid.UUID, action, entityType, entityID string, detail map[string]any) {
	if q == nil {
		return
	}

	q.Enqueue(&ActivityJob{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	})
}
