package repository

import (
	"context"
	"fmt"

	"github.com/koyeliyag-code/healthsync/internal/models"
)

// AuditRepository handles access-audit database operations
type AuditRepository struct{}

// NewAuditRepository creates a new audit repository
func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

// Record appends an access-audit entry
func (r *AuditRepository) Record(ctx context.Context, entry *models.AccessAudit) error {
	db, err := conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record access audit: %w", err)
	}
	return nil
}

// ListByOrganization retrieves recent access-audit entries for an organization
func (r *AuditRepository) ListByOrganization(ctx context.Context, orgID string, limit int) ([]models.AccessAudit, error) {
	db, err := conn(ctx)
	if err != nil {
		return nil, err
	}
	query := db.Where("organization_id = ?", orgID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var entries []models.AccessAudit
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list access audits: %w", err)
	}
	return entries, nil
}
