package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"travel-admin/internal/audit"
	"travel-admin/internal/catalog"
	"travel-admin/internal/locale"
	"travel-admin/internal/logger"
	"travel-admin/internal/payload"
	"travel-admin/internal/upstream"
	"travel-admin/internal/validation"

	"go.uber.org/zap"
)

// Service manages the simple catalog entities referenced by trips.
type Service interface {
	List(ctx context.Context, kind Kind) ([]Record, error)
	Create(ctx context.Context, kind Kind, values map[string]any) (Record, error)
	Edit(ctx context.Context, kind Kind, id string, values map[string]any) (Record, error)
	Delete(ctx context.Context, kind Kind, id string) (string, error)
}

type service struct {
	client upstream.Doer
	audit  *audit.Recorder
}

func NewService(client upstream.Doer, rec *audit.Recorder) Service {
	return &service{client: client, audit: rec}
}

func (s *service) lookup(kind Kind, write bool) (Definition, error) {
	def, ok := Lookup(kind)
	if !ok {
		return Definition{}, ErrUnknownKind
	}
	if write && def.ReadOnly() {
		return Definition{}, ErrReadOnly
	}
	return def, nil
}

func (s *service) List(ctx context.Context, kind Kind) ([]Record, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListResources"),
		zap.String("kind", string(kind)),
	)

	def, err := s.lookup(kind, false)
	if err != nil {
		return nil, err
	}

	var data map[string]json.RawMessage
	if err := s.client.Do(ctx, def.list, nil, &data); err != nil {
		log.Error("failed to list resources", zap.Error(err))
		return nil, err
	}

	records, err := decodeList(data[def.list.RootField])
	if err != nil {
		log.Error("failed to decode resources", zap.Error(err))
		return nil, err
	}

	log.Debug("ListResources success", zap.Int("count", len(records)))
	return records, nil
}

func (s *service) Create(ctx context.Context, kind Kind, values map[string]any) (Record, error) {
	def, err := s.lookup(kind, true)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, def, audit.ActionCreate, def.create, def.Rules, "", values)
}

func (s *service) Edit(ctx context.Context, kind Kind, id string, values map[string]any) (Record, error) {
	def, err := s.lookup(kind, true)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrMissingID
	}
	return s.mutate(ctx, def, audit.ActionEdit, def.edit, def.editRules(), id, values)
}

func (s *service) mutate(ctx context.Context, def Definition, action audit.Action, op *upstream.Operation, rules []validation.Rule, id string, values map[string]any) (Record, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", op.Name),
		zap.String("kind", string(def.Kind)),
	)
	log.Info(op.Name + " started")

	fields, err := validation.ValidateFields(rules, values, locale.FromCtx(ctx))
	if err != nil {
		log.Info("resource rejected by validation", zap.Error(err))
		return nil, err
	}

	vars, err := payload.AssembleFields(fields, op, id)
	if err != nil {
		log.Error("failed to assemble payload", zap.Error(err))
		return nil, err
	}

	var data map[string]map[string]json.RawMessage
	err = s.client.Do(ctx, op, vars, &data)
	if err != nil {
		s.audit.Submission(ctx, string(def.Kind), id, action, err)
		log.Error("failed to submit resource", zap.Error(err))
		return nil, err
	}

	rec, err := firstRecord(data[op.RootField])
	if err != nil {
		s.audit.Submission(ctx, string(def.Kind), id, action, err)
		log.Error("mutation returned no record", zap.Error(err))
		return nil, err
	}
	s.audit.Submission(ctx, string(def.Kind), catalog.Stringify(rec["id"]), action, nil)

	log.Info(op.Name+" success", zap.Any("id", rec["id"]))
	return rec, nil
}

func (s *service) Delete(ctx context.Context, kind Kind, id string) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteResource"),
		zap.String("kind", string(kind)),
		zap.String("id", id),
	)

	def, err := s.lookup(kind, true)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", ErrMissingID
	}

	var data map[string]map[string]any
	err = s.client.Do(ctx, def.remove, map[string]any{"id": id}, &data)
	s.audit.Submission(ctx, string(def.Kind), id, audit.ActionDelete, err)
	if err != nil {
		log.Error("failed to delete resource", zap.Error(err))
		return "", err
	}

	result := data[def.remove.RootField]
	if result == nil {
		return "", ErrNotFound
	}
	// The payload holds a single <entity>Id member.
	for _, v := range result {
		if deleted := catalog.Stringify(v); deleted != "" {
			log.Info("DeleteResource success")
			return deleted, nil
		}
	}
	return id, nil
}

// decodeList accepts both a relay connection and a plain list.
func decodeList(raw json.RawMessage) ([]Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []Record{}, nil
	}

	var nodes []map[string]any
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &nodes); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
	} else {
		var conn catalog.Connection
		if err := json.Unmarshal(raw, &conn); err != nil {
			return nil, fmt.Errorf("decode connection: %w", err)
		}
		nodes = conn.Nodes()
	}

	out := make([]Record, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, Record(n))
		}
	}
	return out, nil
}

// firstRecord unwraps a mutation payload such as {destination: {...}}.
func firstRecord(members map[string]json.RawMessage) (Record, error) {
	for _, raw := range members {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err == nil && rec != nil {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}
