package audit

import (
	"context"
	"time"

	"maid-recruitment-backend/internal/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes structured audit records for every command outcome.
// It implements domain.AuditLogger and never fails the business
// operation on its own errors.
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewLogger builds an audit logger on top of a production Zap config
// writing JSON to stdout.
func NewLogger(serviceName, environment string) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		zapLogger:   zapLogger,
		serviceName: serviceName,
		environment: environment,
	}, nil
}

// LogSecurityEvent records one audit entry. The context is accepted for
// interface symmetry with async sinks; the stdout sink never blocks on it.
func (l *Logger) LogSecurityEvent(_ context.Context, entry domain.AuditEntry) error {
	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.Time("logged_at", time.Now()),
		zap.String("action", entry.Action),
		zap.String("user_id", entry.UserID),
	}
	if entry.JobID != "" {
		fields = append(fields, zap.String("job_id", entry.JobID))
	}
	if entry.ApplicationID != "" {
		fields = append(fields, zap.String("application_id", entry.ApplicationID))
	}
	if len(entry.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", entry.Metadata))
	}

	l.zapLogger.Info("audit_event", fields...)
	return nil
}

// Sync flushes buffered log entries; call on shutdown.
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}
