package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/koyeliyag-code/healthsync/internal/cache"
	"github.com/koyeliyag-code/healthsync/internal/metrics"
	"github.com/koyeliyag-code/healthsync/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrOrganizationNotFound is returned when an organization id does not
// resolve, including malformed ids.
var ErrOrganizationNotFound = errors.New("organization not found")

const listingCacheTTL = 5 * time.Minute

var listingCacheKey = cache.Key("directory", "organizations")

// OrganizationStore is the slice of storage the directory needs
type OrganizationStore interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]models.Organization, error)
	InsertSeed(ctx context.Context, orgs []models.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

// DirectoryService resolves and lists organizations. Listing is
// availability-over-consistency: it never fails the caller, degrading to a
// last-known-good cached listing and finally to the fixed seed set.
type DirectoryService struct {
	orgs  OrganizationStore
	cache cache.Cache
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(orgs OrganizationStore, c cache.Cache) *DirectoryService {
	return &DirectoryService{orgs: orgs, cache: c}
}

// seedOrganizations is the fixed set materialized into an empty store
func seedOrganizations() []models.Organization {
	return []models.Organization{
		{Name: "Community Clinic A", Slug: "community-clinic-a"},
		{Name: "General Hospital B", Slug: "general-hospital-b"},
		{Name: "Independent Practice C", Slug: "independent-practice-c"},
	}
}

// seedListing is the synthetic listing served when the store holds nothing
// and nothing is cached
func seedListing() []models.OrganizationSummary {
	seeds := seedOrganizations()
	out := make([]models.OrganizationSummary, len(seeds))
	for i, o := range seeds {
		out[i] = models.OrganizationSummary{ID: fmt.Sprintf("org-%d", i+1), Name: o.Name}
	}
	return out
}

// ListOrganizations returns the directory listing. It never fails: a
// reachable empty store is seeded first (idempotently, only when the count
// is zero), an unreachable or erroring store degrades to the fallback chain.
func (s *DirectoryService) ListOrganizations(ctx context.Context) []models.OrganizationSummary {
	count, err := s.orgs.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("organization count failed, serving fallback listing")
		return s.fallbackListing(ctx)
	}

	if count == 0 {
		if err := s.orgs.InsertSeed(ctx, seedOrganizations()); err != nil {
			log.Warn().Err(err).Msg("organization seeding failed, serving fallback listing")
			return s.fallbackListing(ctx)
		}
		log.Info().Msg("seeded default organizations")
	}

	orgs, err := s.orgs.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("organization listing failed, serving fallback listing")
		return s.fallbackListing(ctx)
	}

	listing := make([]models.OrganizationSummary, len(orgs))
	for i, o := range orgs {
		listing[i] = models.OrganizationSummary{ID: o.ID.String(), Name: o.Name}
	}

	if payload, err := json.Marshal(listing); err == nil {
		if err := s.cache.Set(ctx, listingCacheKey, payload, listingCacheTTL); err != nil {
			log.Debug().Err(err).Msg("failed to cache organization listing")
		}
	}

	metrics.DirectoryListings.WithLabelValues("store").Inc()
	return listing
}

// fallbackListing serves the last-known-good cached listing, then the seed set
func (s *DirectoryService) fallbackListing(ctx context.Context) []models.OrganizationSummary {
	if payload, err := s.cache.Get(ctx, listingCacheKey); err == nil {
		var listing []models.OrganizationSummary
		if err := json.Unmarshal(payload, &listing); err == nil && len(listing) > 0 {
			metrics.DirectoryListings.WithLabelValues("cache").Inc()
			return listing
		}
	}
	metrics.DirectoryListings.WithLabelValues("seed").Inc()
	return seedListing()
}

// Resolve parses id into the store's native key format and loads the
// organization. A malformed id resolves to not-found, not a fault.
func (s *DirectoryService) Resolve(ctx context.Context, id string) (*models.Organization, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		// Malformed ids are a caller mistake, not a fault
		log.Debug().Str("organization_id", id).Msg("invalid organization identifier")
		return nil, ErrOrganizationNotFound
	}
	org, err := s.orgs.GetByID(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return org, nil
}
