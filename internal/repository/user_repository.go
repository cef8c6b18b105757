package repository

import (
	"context"
	"fmt"

	"github.com/koyeliyag-code/healthsync/internal/models"
)

// UserRepository handles user database operations
type UserRepository struct{}

// NewUserRepository creates a new user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// ListDoctorsByOrganization retrieves the doctor accounts belonging to an
// organization. Membership is derived from the profile back-reference, not a
// separate relation.
func (r *UserRepository) ListDoctorsByOrganization(ctx context.Context, orgID string) ([]models.User, error) {
	db, err := conn(ctx)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := db.
		Where("role = ? AND profile->>'organizationId' = ?", models.RoleDoctor, orgID).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return users, nil
}
