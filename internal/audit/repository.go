package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-admin/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Record(ctx context.Context, e Entry) (Entry, error)
	List(ctx context.Context, f Filter) ([]Entry, int64, error)
}

type repository struct {
	db  *sql.DB
	now func() time.Time
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db, now: time.Now}
}

func (r *repository) Record(ctx context.Context, e Entry) (Entry, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Record"),
		zap.String("entity", e.Entity),
		zap.String("action", string(e.Action)),
	)

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = r.now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO submission_audit
			(id, entity, entity_id, action, actor, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.Entity, e.EntityID, string(e.Action), e.Actor, string(e.Status), e.Error, e.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			log.Error("audit insert rejected", zap.String("pq_code", string(pqErr.Code)), zap.Error(err))
		} else {
			log.Error("audit insert failed", zap.Error(err))
		}
		return Entry{}, err
	}

	return e, nil
}

func (r *repository) List(ctx context.Context, f Filter) ([]Entry, int64, error) {
	// ---------- DEFAULTS ----------
	limit := int32(20)
	page := int32(1)
	if f.Limit > 0 {
		limit = f.Limit
	}
	if limit > 100 {
		limit = 100
	}
	if f.Page > 0 {
		page = f.Page
	}
	offset := (page - 1) * limit

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.Int32("limit", limit),
		zap.Int32("page", page),
	)

	where := []string{}
	args := []interface{}{}
	if len(f.Entities) > 0 {
		where = append(where, fmt.Sprintf("entity = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(f.Entities))
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	// ---------- COUNT ----------
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM submission_audit"+whereSQL, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	// ---------- DATA ----------
	query := `
		SELECT id, entity, entity_id, action, actor, status, error, created_at
		FROM submission_audit` + whereSQL +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("list query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var action, status string
		if err := rows.Scan(&e.ID, &e.Entity, &e.EntityID, &action, &e.Actor, &status, &e.Error, &e.CreatedAt); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		e.Action = Action(action)
		e.Status = Status(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, 0, err
	}

	return entries, total, nil
}
