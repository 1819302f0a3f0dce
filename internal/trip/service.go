package trip

import (
	"context"
	"errors"

	"travel-admin/internal/audit"
	"travel-admin/internal/draft"
	"travel-admin/internal/hydrate"
	"travel-admin/internal/locale"
	"travel-admin/internal/logger"
	"travel-admin/internal/payload"
	"travel-admin/internal/upstream"
	"travel-admin/internal/validation"

	"go.uber.org/zap"
)

// SubDestinationIndexer provides the destination to sub-destination membership
// used to check program steps.
type SubDestinationIndexer interface {
	SubDestinationIndex(ctx context.Context) (map[string][]string, error)
}

// Service defines the trip submission and lookup operations.
type Service interface {
	Check(ctx context.Context, t *draft.Trip) error
	CreateOneDay(ctx context.Context, t *draft.Trip) (Summary, error)
	EditOneDay(ctx context.Context, t *draft.Trip) (Summary, error)
	CreateMultiDay(ctx context.Context, t *draft.Trip) (Summary, error)
	EditMultiDay(ctx context.Context, t *draft.Trip) (Summary, error)
	Delete(ctx context.Context, id string) (string, error)
	List(ctx context.Context, kind draft.Kind) ([]Summary, error)
	Get(ctx context.Context, id string) (hydrate.Record, error)
	Hydrate(ctx context.Context, id string) (hydrate.Result, error)
}

type service struct {
	client   upstream.Doer
	index    SubDestinationIndexer
	hydrator *hydrate.Hydrator
	audit    *audit.Recorder
	policy   validation.Policy
}

// NewService wires the trip service. A nil recorder disables the journal.
func NewService(client upstream.Doer, index SubDestinationIndexer, h *hydrate.Hydrator, rec *audit.Recorder, policy validation.Policy) Service {
	return &service{client: client, index: index, hydrator: h, audit: rec, policy: policy}
}

// Check validates t without submitting it.
func (s *service) Check(ctx context.Context, t *draft.Trip) error {
	_, err := s.validate(ctx, t)
	return err
}

func (s *service) CreateOneDay(ctx context.Context, t *draft.Trip) (Summary, error) {
	return s.submit(ctx, "CreateOneDay", draft.OneDay, false, createOneDayTrip, t)
}

func (s *service) EditOneDay(ctx context.Context, t *draft.Trip) (Summary, error) {
	return s.submit(ctx, "EditOneDay", draft.OneDay, true, editOneDayTrip, t)
}

func (s *service) CreateMultiDay(ctx context.Context, t *draft.Trip) (Summary, error) {
	return s.submit(ctx, "CreateMultiDay", draft.MultiDay, false, createMultiDayTrip, t)
}

func (s *service) EditMultiDay(ctx context.Context, t *draft.Trip) (Summary, error) {
	return s.submit(ctx, "EditMultiDay", draft.MultiDay, true, editMultiDayTrip, t)
}

func (s *service) validate(ctx context.Context, t *draft.Trip) (validation.Validated, error) {
	var index map[string][]string
	if t != nil && hasSubDestinations(t.Program) {
		idx, err := s.index.SubDestinationIndex(ctx)
		if err != nil {
			return validation.Validated{}, err
		}
		index = idx
	}
	return validation.Validate(t, validation.Options{
		Locale:          locale.FromCtx(ctx),
		Policy:          s.policy,
		SubDestinations: index,
	})
}

func (s *service) submit(ctx context.Context, method string, kind draft.Kind, edit bool, op *upstream.Operation, t *draft.Trip) (Summary, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", method),
	)
	log.Info(method + " started")

	if t == nil || t.Kind != kind {
		log.Warn("trip kind mismatch")
		return Summary{}, ErrKindMismatch
	}
	if edit && !t.IsEdit() {
		return Summary{}, ErrMissingID
	}
	if !edit {
		t.ID = ""
	}

	v, err := s.validate(ctx, t)
	if err != nil {
		if errors.Is(err, validation.ErrInvalid) {
			log.Info("trip rejected by validation", zap.Error(err))
		} else {
			log.Error("failed to validate trip", zap.Error(err))
		}
		return Summary{}, err
	}

	vars, err := payload.Assemble(v, op)
	if err != nil {
		log.Error("failed to assemble payload", zap.Error(err))
		return Summary{}, err
	}

	action := audit.ActionCreate
	if edit {
		action = audit.ActionEdit
	}
	entity := string(kind)

	var data map[string]mutationResult
	err = s.client.Do(ctx, op, vars, &data)
	if err != nil {
		s.audit.Submission(ctx, entity, t.ID, action, err)
		log.Error("failed to submit trip", zap.Error(err))
		return Summary{}, err
	}

	n := data[op.RootField].trip()
	if n == nil {
		s.audit.Submission(ctx, entity, t.ID, action, ErrEmptyResult)
		log.Error("mutation returned no trip")
		return Summary{}, ErrEmptyResult
	}
	res := n.summary(kind)
	s.audit.Submission(ctx, entity, res.ID, action, nil)

	log.Info(method+" success", zap.String("trip_id", res.ID))
	return res, nil
}

func (s *service) Delete(ctx context.Context, id string) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.String("trip_id", id),
	)
	if id == "" {
		return "", ErrMissingID
	}

	var data deleteResult
	err := s.client.Do(ctx, deleteTrip, map[string]any{"id": id}, &data)
	s.audit.Submission(ctx, "trip", id, audit.ActionDelete, err)
	if err != nil {
		log.Error("failed to delete trip", zap.Error(err))
		return "", err
	}
	if data.DeleteTrip == nil {
		return "", ErrNotFound
	}

	log.Info("Delete success")
	return data.DeleteTrip.TripID, nil
}

// List returns trips of one kind; an empty kind lists both.
func (s *service) List(ctx context.Context, kind draft.Kind) ([]Summary, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
		zap.String("kind", string(kind)),
	)

	vars := map[string]any{}
	if kind != "" {
		lt, ok := lengthTypes[kind]
		if !ok {
			return nil, ErrInvalidLengthType
		}
		vars["lengthType"] = lt
	}

	var data listResult
	if err := s.client.Do(ctx, listTrips, vars, &data); err != nil {
		log.Error("failed to list trips", zap.Error(err))
		return nil, err
	}

	nodes := data.Trips.Nodes()
	out := make([]Summary, 0, len(nodes))
	for _, n := range nodes {
		// Other node types in the union carry no id.
		if n.ID == "" {
			continue
		}
		out = append(out, n.summary(kind))
	}

	log.Debug("List success", zap.Int("count", len(out)))
	return out, nil
}

func (s *service) Get(ctx context.Context, id string) (hydrate.Record, error) {
	if id == "" {
		return hydrate.Record{}, ErrMissingID
	}

	var data getResult
	if err := s.client.Do(ctx, getTrip, map[string]any{"id": id}, &data); err != nil {
		logger.FromCtx(ctx).Error("failed to get trip", zap.String("trip_id", id), zap.Error(err))
		return hydrate.Record{}, err
	}
	if data.Trip == nil {
		return hydrate.Record{}, ErrNotFound
	}
	return *data.Trip, nil
}

// Hydrate loads a persisted trip and rebuilds its editable draft.
func (s *service) Hydrate(ctx context.Context, id string) (hydrate.Result, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return hydrate.Result{}, err
	}
	return s.hydrator.Trip(ctx, rec)
}

func hasSubDestinations(p draft.Program) bool {
	for _, st := range p.Steps() {
		if len(st.SubDestinationIDs) > 0 || len(st.VisitHighlightIDs) > 0 {
			return true
		}
	}
	return false
}
