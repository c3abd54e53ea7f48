package notify

import (
	"context"
	"log/slog"
)

// LogSink writes events to the structured log. It is the fallback when no
// transport is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Send(ctx context.Context, ev Event) error {
	s.logger.InfoContext(ctx, "appointment event",
		"event_type", ev.Type,
		"appointment_id", ev.AppointmentID,
		"recipient_id", ev.RecipientID,
		"recipient_role", ev.RecipientRole,
	)
	return nil
}
