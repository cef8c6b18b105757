package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization is a clinic or hospital whose roster an admin can read.
// AdminID is fixed at creation; roster access is granted to that identity only.
type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex" json:"slug"`
	AdminID   uuid.UUID `gorm:"type:uuid;index" json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Organization) TableName() string {
	return "organizations"
}

// BeforeCreate hook
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrganizationSummary is the directory-listing view of an organization
type OrganizationSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
