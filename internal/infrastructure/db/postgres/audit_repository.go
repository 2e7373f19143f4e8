package postgres

import (
	"context"
	"fmt"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/domain"
)

// AuditRepository appends rows to the audit_logs ledger.
type AuditRepository struct {
	db DB
}

func NewAuditRepository(db DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert appends one audit entry. Rows are never updated or deleted.
func (r *AuditRepository) Insert(ctx context.Context, e domain.AuditEntry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_logs (user_id, action, entity_type, entity_id, description, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.UserID, e.Action, e.EntityType, e.EntityID, e.Description, e.IPAddress, e.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
