package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dangerclosesec/fieldwork/internal/audit"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/google/uuid"
)

// base carries what every domain service shares.
type base struct {
	store *repository.Store
	audit audit.Logger
	now   func() time.Time
}

func newBase(store *repository.Store, logger audit.Logger) base {
	if logger == nil {
		logger = audit.NoOpLogger{}
	}
	return base{store: store, audit: logger, now: time.Now}
}

// SetClock replaces the clock used for "today".
func (b *base) SetClock(now func() time.Time) {
	b.now = now
}

func (b *base) today() string {
	return b.now().Format(model.DateLayout)
}

// record writes an activity log entry. Failures are logged and otherwise
// ignored; the mutation has already committed.
func (b *base) record(ctx context.Context, action, entityType string, id uuid.UUID, data map[string]any) {
	var err error
	switch action {
	case model.ActionCreate:
		err = b.audit.LogCreate(ctx, entityType, id, data)
	case model.ActionUpdate:
		err = b.audit.LogUpdate(ctx, entityType, id, data)
	case model.ActionDelete:
		err = b.audit.LogDelete(ctx, entityType, id, data)
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to record activity",
			"action", action,
			"entity_type", entityType,
			"entity_id", id,
			"error", err,
		)
	}
}

// setIf copies *v into fields under column when v is non-nil.
func setIf[T any](fields map[string]any, column string, v *T) {
	if v != nil {
		fields[column] = *v
	}
}

// keys returns the distinct ids picked from items.
func keys[T any](items []T, pick func(T) uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		id := pick(item)
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// index maps records by id.
func index[T any](items []T, id func(T) uuid.UUID) map[uuid.UUID]T {
	m := make(map[uuid.UUID]T, len(items))
	for _, item := range items {
		m[id(item)] = item
	}
	return m
}
