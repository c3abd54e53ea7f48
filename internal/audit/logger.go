package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// Writer persists one audit entry.
type Writer interface {
	Write(ctx context.Context, ev Event) error
}

// Logger stores audit entries in the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, ev Event) error {
	entry := models.AuditLog{
		BusinessID: ev.BusinessID,
		ActorID:    ev.ActorID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Metadata:   encodeMetadata(ev.Metadata),
	}
	return l.db.WithContext(ctx).Create(&entry).Error
}

// SlogWriter emits audit entries as log records. Used when no database is
// configured.
type SlogWriter struct {
	logger *slog.Logger
}

func NewSlogWriter(logger *slog.Logger) *SlogWriter {
	return &SlogWriter{logger: logger}
}

func (w *SlogWriter) Write(ctx context.Context, ev Event) error {
	w.logger.InfoContext(ctx, "audit",
		"business_id", ev.BusinessID,
		"actor_id", ev.ActorID,
		"action", ev.Action,
		"entity", ev.Entity,
		"entity_id", ev.EntityID,
		"metadata", encodeMetadata(ev.Metadata),
	)
	return nil
}

func encodeMetadata(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
