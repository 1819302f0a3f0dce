package audit

import (
	"context"

	"travel-admin/internal/logger"

	"go.uber.org/zap"
)

// Recorder writes journal entries on behalf of services. A Recorder without a
// repository is disabled and drops entries.
type Recorder struct {
	repo Repository
}

func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Enabled() bool {
	return r != nil && r.repo != nil
}

// Submission records the outcome of one mutation. Journal failures are logged, never returned.
func (r *Recorder) Submission(ctx context.Context, entity, entityID string, action Action, cause error) {
	if !r.Enabled() {
		return
	}
	e := Entry{
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Actor:    logger.ActorFrom(ctx),
		Status:   StatusSuccess,
	}
	if cause != nil {
		e.Status = StatusFailure
		e.Error = cause.Error()
	}
	if _, err := r.repo.Record(ctx, e); err != nil {
		logger.FromCtx(ctx).Warn("audit entry dropped",
			zap.String("entity", entity),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

func (r *Recorder) List(ctx context.Context, f Filter) ([]Entry, int64, error) {
	if !r.Enabled() {
		return nil, 0, ErrDisabled
	}
	return r.repo.List(ctx, f)
}
