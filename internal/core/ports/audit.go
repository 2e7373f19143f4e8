package ports

import (
	"context"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/domain"
)

// AuditLog appends entries to the security ledger. Record is best-effort:
// implementations log write failures but never propagate them, so an audit
// outage cannot fail the business operation it annotates.
type AuditLog interface {
	Record(ctx context.Context, entry domain.AuditEntry)
}
