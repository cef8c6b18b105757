package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/koyeliyag-code/healthsync/internal/models"
)

// OrganizationRepository handles organization database operations
type OrganizationRepository struct{}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository() *OrganizationRepository {
	return &OrganizationRepository{}
}

// Count returns the number of stored organizations
func (r *OrganizationRepository) Count(ctx context.Context) (int64, error) {
	db, err := conn(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := db.Model(&models.Organization{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count organizations: %w", err)
	}
	return count, nil
}

// List retrieves all organizations
func (r *OrganizationRepository) List(ctx context.Context) ([]models.Organization, error) {
	db, err := conn(ctx)
	if err != nil {
		return nil, err
	}
	var orgs []models.Organization
	if err := db.Order("created_at ASC").Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// InsertSeed inserts the given organizations in one batch
func (r *OrganizationRepository) InsertSeed(ctx context.Context, orgs []models.Organization) error {
	db, err := conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(&orgs).Error; err != nil {
		return fmt.Errorf("failed to insert seed organizations: %w", err)
	}
	return nil
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	db, err := conn(ctx)
	if err != nil {
		return nil, err
	}
	var org models.Organization
	if err := db.Where("id = ?", id).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}
