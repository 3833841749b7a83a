// File: internal/audit/recorder.go
package audit

import (
	"context"
	"fmt"
	"time"

	"adventure_backend/internal/config"
	"adventure_backend/internal/platform/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Recorder persists auth outcomes and lists them back for reporting.
type Recorder interface {
	Record(ctx context.Context, event *AuthEvent) error
	ListSince(ctx context.Context, kind EventKind, since time.Time) ([]AuthEvent, error)
}

// GORMRecorder implements Recorder on a relational database.
type GORMRecorder struct {
	db *gorm.DB
}

// NewGORMRecorder creates a GORM-backed recorder. The caller is expected to have migrated the schema.
func NewGORMRecorder(db *gorm.DB) *GORMRecorder {
	return &GORMRecorder{db: db}
}

// Migrate creates or updates the auth_events table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&AuthEvent{}); err != nil {
		return fmt.Errorf("failed to migrate auth_events: %w", err)
	}
	return nil
}

func (r *GORMRecorder) Record(ctx context.Context, event *AuthEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to record %s event: %w", event.Kind, err)
	}
	return nil
}

// ListSince returns events of the given kind created at or after since, oldest first.
func (r *GORMRecorder) ListSince(ctx context.Context, kind EventKind, since time.Time) ([]AuthEvent, error) {
	var events []AuthEvent
	err := r.db.WithContext(ctx).
		Where("kind = ? AND created_at >= ?", kind, since).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("listing %s events since %s failed: %w", kind, since.Format(time.RFC3339), err)
	}
	return events, nil
}

// NoopRecorder drops every event. Used when the audit database is disabled.
type NoopRecorder struct{}

func (NoopRecorder) Record(context.Context, *AuthEvent) error { return nil }

func (NoopRecorder) ListSince(context.Context, EventKind, time.Time) ([]AuthEvent, error) {
	return nil, nil
}

// ProvideRecorder opens and migrates the audit database when AUDIT_DB_ENABLED is set,
// otherwise it returns a NoopRecorder. The cleanup closes the connection.
func ProvideRecorder(cfg *config.Config, logger *zap.Logger) (Recorder, func(), error) {
	logger = logger.Named("audit")
	if !cfg.AuditDBEnabled {
		logger.Info("Audit database disabled; auth events will not be persisted.")
		return NoopRecorder{}, func() {}, nil
	}

	db, err := database.NewGORM(cfg)
	if err != nil {
		logger.Error("Failed to open audit database", zap.String("driver", cfg.AuditDBDriver), zap.Error(err))
		return nil, nil, err
	}
	if err := Migrate(db); err != nil {
		database.CloseGORMDB(db)
		return nil, nil, err
	}

	logger.Info("Audit database ready", zap.String("driver", cfg.AuditDBDriver))
	return NewGORMRecorder(db), func() { database.CloseGORMDB(db) }, nil
}
