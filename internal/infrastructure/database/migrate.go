package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studioforma/atelier/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	// Custom types must exist before auto-migrate references them
	if err := createCustomTypes(db); err != nil {
		logger.Error("Failed to create custom types", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.Member{},
		&model.Client{},
		&model.Project{},
		&model.Task{},
		&model.ClearanceRequest{},
		&model.Notification{},
		&model.Document{},
		&model.ProjectImage{},
		&model.MeetingLog{},
		&model.Invoice{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates custom indexes that GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// At most one pending clearance per task. Requests racing for the same
	// task surface as a unique violation that the repository maps to a
	// conflict error.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_pending_clearance_per_task ON task_clearances (task_id) WHERE status = 'pending'`).Error; err != nil {
		return err
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_tasks_due_open ON tasks (due_date) WHERE status NOT IN ('completed') AND due_date IS NOT NULL`).Error; err != nil {
		return err
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications (user_id, created_at) WHERE is_read = false`).Error; err != nil {
		return err
	}

	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return nil
}

// createCustomTypes creates custom PostgreSQL types
func createCustomTypes(db *gorm.DB) error {
	types := map[string]string{
		"task_status":       `CREATE TYPE task_status AS ENUM ('pending', 'in_progress', 'completed', 'overdue')`,
		"task_priority":     `CREATE TYPE task_priority AS ENUM ('low', 'medium', 'high', 'urgent')`,
		"clearance_status":  `CREATE TYPE clearance_status AS ENUM ('pending', 'approved', 'rejected')`,
		"project_status":    `CREATE TYPE project_status AS ENUM ('planning', 'in_progress', 'on_hold', 'completed', 'cancelled')`,
		"notification_type": `CREATE TYPE notification_type AS ENUM ('deadline_reminder', 'task_assigned', 'status_update', 'project_update')`,
		"invoice_status":    `CREATE TYPE invoice_status AS ENUM ('draft', 'sent', 'paid', 'void')`,
	}

	for name, ddl := range types {
		var exists bool
		db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = ?)`, name).Scan(&exists)
		if !exists {
			if err := db.Exec(ddl).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
