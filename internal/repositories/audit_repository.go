package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils"
)

type AuditRepository interface {
	Log(ctx context.Context, entry *models.AuditLog) error
}

type auditRepository struct {
	DB *sql.DB
}

func NewAuditRepo(db *sql.DB) AuditRepository {
	return &auditRepository{DB: db}
}

// Log appends one row to data_logs.
func (r *auditRepository) Log(ctx context.Context, entry *models.AuditLog) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO data_logs (id, table_name, action, old_value, new_value, mod_user, mod_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(dbCtx, query, entry.ID, entry.TableName, string(entry.Action), []byte(entry.OldValue), []byte(entry.NewValue), entry.ModUser, entry.ModTime)
	if err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	return nil
}
