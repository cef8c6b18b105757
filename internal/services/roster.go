package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/koyeliyag-code/healthsync/internal/auth"
	"github.com/koyeliyag-code/healthsync/internal/models"
	"golang.org/x/sync/errgroup"
)

// rosterFanoutLimit bounds concurrent per-doctor resolution
const rosterFanoutLimit = 8

// UserStore is the slice of storage the aggregator needs for doctors
type UserStore interface {
	ListDoctorsByOrganization(ctx context.Context, orgID string) ([]models.User, error)
}

// PatientStore is the slice of storage the aggregator needs for patients
type PatientStore interface {
	ListByAuthor(ctx context.Context, ref models.DoctorRef) ([]models.Patient, error)
}

// RosterService assembles the organization roster snapshot: every doctor in
// the organization with the patients that doctor created and the diagnoses
// that doctor authored. It only reads; it never mutates patient records.
type RosterService struct {
	users    UserStore
	patients PatientStore
}

// NewRosterService creates a new roster service
func NewRosterService(users UserStore, patients PatientStore) *RosterService {
	return &RosterService{users: users, patients: patients}
}

// ListDoctorsWithRecords builds the roster for an already-resolved,
// already-authorized organization. Doctors with no records still appear with
// empty lists. Any storage failure fails the whole request; a partial roster
// is never returned.
func (s *RosterService) ListDoctorsWithRecords(ctx context.Context, org *models.Organization) ([]models.RosterDoctor, error) {
	doctors, err := s.users.ListDoctorsByOrganization(ctx, org.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve doctors: %w", err)
	}

	// Per-doctor resolution is independent; fan out and write results by
	// index so each doctor keeps a deterministic association with its own
	// patients and diagnoses.
	roster := make([]models.RosterDoctor, len(doctors))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rosterFanoutLimit)
	for i, doctor := range doctors {
		g.Go(func() error {
			entry, err := s.assembleDoctor(gctx, doctor)
			if err != nil {
				return err
			}
			roster[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return roster, nil
}

func (s *RosterService) assembleDoctor(ctx context.Context, doctor models.User) (models.RosterDoctor, error) {
	ref := models.DoctorRef{ID: doctor.ID.String(), Email: doctor.Email}

	patients, err := s.patients.ListByAuthor(ctx, ref)
	if err != nil {
		return models.RosterDoctor{}, fmt.Errorf("failed to resolve patients for doctor %s: %w", doctor.ID, err)
	}

	patientList := make([]models.RosterPatient, len(patients))
	diagnoses := make([]models.RosterDiagnosis, 0)
	for i, p := range patients {
		patientList[i] = models.RosterPatient{
			ID:        p.ID.String(),
			Name:      p.Name,
			Age:       p.Age,
			ICD11:     p.ICD11,
			Disease:   p.Disease,
			CreatedAt: p.CreatedAt,
		}

		// A diagnosis on this doctor's patient may have been authored by a
		// different doctor; keep only this doctor's own.
		for _, d := range p.Diagnoses {
			if !authoredBy(d, ref) {
				continue
			}
			id := d.ID
			if id == "" {
				// Issued at read time only; not written back
				id = uuid.NewString()
			}
			diagnoses = append(diagnoses, models.RosterDiagnosis{
				ID:          id,
				PatientID:   p.ID.String(),
				PatientName: p.Name,
				ICD11:       d.ICD11,
				Disease:     d.Disease,
				Notes:       d.Notes,
				CreatedAt:   d.CreatedAt,
			})
		}
	}

	profile := doctor.Profile
	if profile == nil {
		profile = models.Profile{}
	}

	return models.RosterDoctor{
		ID:        doctor.ID.String(),
		Email:     doctor.Email,
		Profile:   profile,
		Patients:  patientList,
		Diagnoses: diagnoses,
	}, nil
}

// authoredBy matches a diagnosis author against both doctor reference forms
func authoredBy(d models.DiagnosisRecord, ref models.DoctorRef) bool {
	author := auth.CanonicalID(d.CreatedBy)
	if author == "" {
		return false
	}
	return author == auth.CanonicalID(ref.ID) || author == auth.CanonicalID(ref.Email)
}
