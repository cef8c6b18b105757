package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit outcome values
const (
	AuditOutcomeSuccess   = "success"
	AuditOutcomeDenied    = "denied"
	AuditOutcomeForbidden = "forbidden"
	AuditOutcomeFailure   = "failure"
)

// AccessAudit records an attempt to read an organization's roster. Written
// asynchronously and best-effort; it never influences the response.
type AccessAudit struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrganizationID string    `gorm:"type:varchar(64);index" json:"organization_id"`
	RequesterID    string    `gorm:"type:varchar(255);index" json:"requester_id"`
	Outcome        string    `gorm:"type:varchar(20);not null;index" json:"outcome"`
	IPAddress      string    `gorm:"type:varchar(45)" json:"ip_address"`
	Duration       int64     `json:"duration_ms"`
	CreatedAt      time.Time `gorm:"index" json:"timestamp"`
}

// TableName overrides the table name
func (AccessAudit) TableName() string {
	return "audit_logs"
}

// BeforeCreate hook
func (a *AccessAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
