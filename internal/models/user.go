package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role represents an account role
type Role string

const (
	RoleDoctor       Role = "doctor"
	RoleOrganization Role = "organization"
)

// Profile holds loosely-structured account attributes. Doctors carry an
// "organizationId" back-reference here; membership is derived from it, there
// is no separate membership relation.
type Profile map[string]any

// Value implements driver.Valuer for jsonb storage
func (p Profile) Value() (driver.Value, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner
func (p *Profile) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = Profile{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported profile source type %T", src)
	}
}

// OrganizationID returns the organization back-reference, if any
func (p Profile) OrganizationID() string {
	if v, ok := p["organizationId"].(string); ok {
		return v
	}
	return ""
}

// User is an account. Email is unique per account and doubles as a secondary
// correlation key for historical createdBy attribution.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Role      Role      `gorm:"type:varchar(50);not null;index" json:"role"`
	Profile   Profile   `gorm:"type:jsonb" json:"profile"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TokenClaims are the claims carried by a bearer token. The requester
// identity lives in the "id" claim.
type TokenClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
