package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiagnosisRecord is a diagnosis embedded in its owning patient record.
// Legacy rows may lack an id; one is issued at read time so the output is
// always uniquely addressable. CreatedBy holds the authoring doctor's id or
// email, both forms occur in historical data.
type DiagnosisRecord struct {
	ID        string     `json:"id,omitempty"`
	CreatedBy string     `json:"createdBy"`
	ICD11     string     `json:"icd11,omitempty"`
	Disease   string     `json:"disease,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// DiagnosisList is the ordered diagnosis list of a patient, stored as jsonb.
// Diagnoses have no lifecycle outside their owning patient.
type DiagnosisList []DiagnosisRecord

// Value implements driver.Valuer
func (l DiagnosisList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *DiagnosisList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = DiagnosisList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported diagnosis list source type %T", src)
	}
}

// Patient is a patient record. CreatedBy holds the creating doctor's id or
// email (dual form tolerated, matched against both at query time).
type Patient struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string        `gorm:"type:varchar(255);not null" json:"name"`
	Age       int           `json:"age"`
	ICD11     string        `gorm:"type:varchar(50)" json:"icd11,omitempty"`
	Disease   string        `gorm:"type:varchar(255)" json:"disease,omitempty"`
	CreatedBy string        `gorm:"type:varchar(255);not null;index" json:"created_by"`
	Diagnoses DiagnosisList `gorm:"type:jsonb" json:"diagnoses"`
	CreatedAt time.Time     `json:"created_at"`
}

// TableName overrides the table name
func (Patient) TableName() string {
	return "patients"
}

// BeforeCreate hook
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// DoctorRef identifies a doctor for authorship matching. Historical records
// reference doctors either by id or by email, so both keys are carried and
// both are matched.
type DoctorRef struct {
	ID    string
	Email string
}
