package audit

import (
	"context"

	"github.com/google/uuid"
)

// Logger records mutations of domain records
type Logger interface {
	// LogCreate records that a record was created with the given attributes
	LogCreate(ctx context.Context, entityType string, entityID uuid.UUID, attributes map[string]any) error

	// LogUpdate records the fields changed on a record
	LogUpdate(ctx context.Context, entityType string, entityID uuid.UUID, changes map[string]any) error

	// LogDelete records that a record was deleted
	LogDelete(ctx context.Context, entityType string, entityID uuid.UUID, details map[string]any) error
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

// LogCreate implements Logger.LogCreate
func (NoOpLogger) LogCreate(context.Context, string, uuid.UUID, map[string]any) error {
	return nil
}

// LogUpdate implements Logger.LogUpdate
func (NoOpLogger) LogUpdate(context.Context, string, uuid.UUID, map[string]any) error {
	return nil
}

// LogDelete implements Logger.LogDelete
func (NoOpLogger) LogDelete(context.Context, string, uuid.UUID, map[string]any) error {
	return nil
}
