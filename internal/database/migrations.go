package database

import (
	"roomkeeper/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []interface{}{
		&models.User{},
		&models.Room{},
		&models.CleaningSession{},
		&models.Photo{},
		&models.DirtyReport{},
		&models.Notification{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			log.Er("Failed to migrate model", err, "model", model)
			return err
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates the constraint indexes GORM does not express.
// These back the engine's concurrency invariants, so failures here are
// fatal rather than logged-and-skipped.
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating constraint indexes")

	indexes := []string{
		// At most one open session per room. Concurrent StartCleaning
		// calls race on this index instead of a check-then-act read.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_cleaning_sessions_open_room
			ON cleaning_sessions(room_id) WHERE ended_at IS NULL AND deleted_at IS NULL`,
		// Expiry notification dedup key: one notification per recipient
		// per (room, lastCompleted.end) trigger.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_notifications_expiry_dedup
			ON notifications(recipient_id, room_id, trigger_ended_at)
			WHERE trigger_ended_at IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_cleaning_sessions_room_ended
			ON cleaning_sessions(room_id, ended_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_dirty_reports_room_reported
			ON dirty_reports(room_id, reported_at DESC)`,
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			return log.Err("failed to create index", err, "sql", indexSQL)
		}
	}

	log.Info("Constraint indexes created")
	return nil
}
