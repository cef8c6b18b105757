package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/koyeliyag-code/healthsync/internal/cache"
	"github.com/koyeliyag-code/healthsync/internal/models"
	"gorm.io/gorm"
)

type fakeOrgStore struct {
	orgs       []models.Organization
	failing    bool
	seedCalls  int
	countCalls int
}

func (f *fakeOrgStore) Count(ctx context.Context) (int64, error) {
	f.countCalls++
	if f.failing {
		return 0, errors.New("connection refused")
	}
	return int64(len(f.orgs)), nil
}

func (f *fakeOrgStore) List(ctx context.Context) ([]models.Organization, error) {
	if f.failing {
		return nil, errors.New("connection refused")
	}
	return f.orgs, nil
}

func (f *fakeOrgStore) InsertSeed(ctx context.Context, orgs []models.Organization) error {
	f.seedCalls++
	if f.failing {
		return errors.New("connection refused")
	}
	for _, o := range orgs {
		o.ID = uuid.New()
		f.orgs = append(f.orgs, o)
	}
	return nil
}

func (f *fakeOrgStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	if f.failing {
		return nil, errors.New("connection refused")
	}
	for i := range f.orgs {
		if f.orgs[i].ID == id {
			return &f.orgs[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newDirectory(store *fakeOrgStore) (*DirectoryService, *cache.MemoryCache) {
	mc := cache.NewMemoryCache()
	return NewDirectoryService(store, mc), mc
}

func TestListOrganizationsSeedsEmptyStoreOnce(t *testing.T) {
	store := &fakeOrgStore{}
	svc, mc := newDirectory(store)
	defer mc.Close()
	ctx := context.Background()

	first := svc.ListOrganizations(ctx)
	if len(first) != 3 {
		t.Fatalf("expected 3 seeded organizations, got %d", len(first))
	}
	if store.seedCalls != 1 {
		t.Fatalf("expected 1 seed insert, got %d", store.seedCalls)
	}

	second := svc.ListOrganizations(ctx)
	if len(second) != 3 {
		t.Fatalf("expected stable listing, got %d entries", len(second))
	}
	if store.seedCalls != 1 {
		t.Errorf("seeding must be idempotent, got %d inserts", store.seedCalls)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("listing changed between calls: %v vs %v", first[i], second[i])
		}
	}
}

func TestListOrganizationsMapsStoredRows(t *testing.T) {
	id := uuid.New()
	store := &fakeOrgStore{orgs: []models.Organization{{ID: id, Name: "Community Clinic A"}}}
	svc, mc := newDirectory(store)
	defer mc.Close()

	listing := svc.ListOrganizations(context.Background())
	if len(listing) != 1 {
		t.Fatalf("expected 1 organization, got %d", len(listing))
	}
	if listing[0].ID != id.String() || listing[0].Name != "Community Clinic A" {
		t.Errorf("unexpected listing entry: %+v", listing[0])
	}
	if store.seedCalls != 0 {
		t.Errorf("non-empty store must not be seeded")
	}
}

func TestListOrganizationsFallsBackToSeedsWhenStoreDown(t *testing.T) {
	store := &fakeOrgStore{failing: true}
	svc, mc := newDirectory(store)
	defer mc.Close()

	listing := svc.ListOrganizations(context.Background())
	if len(listing) != 3 {
		t.Fatalf("expected 3 seed entries, got %d", len(listing))
	}
	want := []string{"Community Clinic A", "General Hospital B", "Independent Practice C"}
	for i, name := range want {
		if listing[i].Name != name {
			t.Errorf("seed %d: expected %q, got %q", i, name, listing[i].Name)
		}
		if listing[i].ID == "" {
			t.Errorf("seed %d: missing synthetic id", i)
		}
	}
}

func TestListOrganizationsServesLastKnownGoodOnFailure(t *testing.T) {
	id := uuid.New()
	store := &fakeOrgStore{orgs: []models.Organization{{ID: id, Name: "General Hospital B"}}}
	svc, mc := newDirectory(store)
	defer mc.Close()
	ctx := context.Background()

	// Healthy call populates the last-known-good copy
	if got := svc.ListOrganizations(ctx); len(got) != 1 {
		t.Fatalf("expected 1 organization while healthy, got %d", len(got))
	}

	store.failing = true
	listing := svc.ListOrganizations(ctx)
	if len(listing) != 1 || listing[0].ID != id.String() {
		t.Fatalf("expected cached listing after store failure, got %v", listing)
	}
}

func TestResolve(t *testing.T) {
	known := models.Organization{ID: uuid.New(), Name: "Community Clinic A", AdminID: uuid.New()}
	store := &fakeOrgStore{orgs: []models.Organization{known}}
	svc, mc := newDirectory(store)
	defer mc.Close()
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		org, err := svc.Resolve(ctx, known.ID.String())
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if org.Name != known.Name {
			t.Errorf("resolved wrong organization: %+v", org)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := svc.Resolve(ctx, uuid.NewString()); !errors.Is(err, ErrOrganizationNotFound) {
			t.Errorf("expected ErrOrganizationNotFound, got %v", err)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		if _, err := svc.Resolve(ctx, "not-a-uuid"); !errors.Is(err, ErrOrganizationNotFound) {
			t.Errorf("malformed id must resolve to not-found, got %v", err)
		}
	})

	t.Run("store error", func(t *testing.T) {
		store.failing = true
		defer func() { store.failing = false }()
		_, err := svc.Resolve(ctx, known.ID.String())
		if err == nil || errors.Is(err, ErrOrganizationNotFound) {
			t.Errorf("store faults must not masquerade as not-found, got %v", err)
		}
	})
}
