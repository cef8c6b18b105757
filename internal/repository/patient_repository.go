package repository

import (
	"context"
	"fmt"

	"github.com/koyeliyag-code/healthsync/internal/auth"
	"github.com/koyeliyag-code/healthsync/internal/models"
)

// PatientRepository handles patient database operations
type PatientRepository struct{}

// NewPatientRepository creates a new patient repository
func NewPatientRepository() *PatientRepository {
	return &PatientRepository{}
}

// ListByAuthor retrieves the patients created by a doctor. createdBy holds
// the doctor's id in newer rows and the email in historical ones, so both
// keys are matched, canonicalized on both sides of the comparison.
func (r *PatientRepository) ListByAuthor(ctx context.Context, ref models.DoctorRef) ([]models.Patient, error) {
	db, err := conn(ctx)
	if err != nil {
		return nil, err
	}
	keys := []string{auth.CanonicalID(ref.ID), auth.CanonicalID(ref.Email)}
	var patients []models.Patient
	if err := db.
		Where("lower(btrim(created_by)) IN ?", keys).
		Order("created_at ASC").
		Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
