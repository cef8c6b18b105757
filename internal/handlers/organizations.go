package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/koyeliyag-code/healthsync/internal/auth"
	"github.com/koyeliyag-code/healthsync/internal/metrics"
	"github.com/koyeliyag-code/healthsync/internal/models"
	"github.com/koyeliyag-code/healthsync/internal/services"
	"github.com/rs/zerolog/log"
)

// Directory lists and resolves organizations
type Directory interface {
	ListOrganizations(ctx context.Context) []models.OrganizationSummary
	Resolve(ctx context.Context, id string) (*models.Organization, error)
}

// Roster assembles an organization's doctor roster
type Roster interface {
	ListDoctorsWithRecords(ctx context.Context, org *models.Organization) ([]models.RosterDoctor, error)
}

// AuditStore records and reads roster access audits
type AuditStore interface {
	Record(ctx context.Context, entry *models.AccessAudit) error
	ListByOrganization(ctx context.Context, orgID string, limit int) ([]models.AccessAudit, error)
}

// OrganizationHandler serves the organization directory and roster endpoints
type OrganizationHandler struct {
	directory Directory
	roster    Roster
	guard     *auth.Guard
	audits    AuditStore
	probe     func(ctx context.Context) bool
}

// NewOrganizationHandler creates a new organization handler. probe reports
// whether the store is currently reachable.
func NewOrganizationHandler(directory Directory, roster Roster, guard *auth.Guard, audits AuditStore, probe func(ctx context.Context) bool) *OrganizationHandler {
	return &OrganizationHandler{
		directory: directory,
		roster:    roster,
		guard:     guard,
		audits:    audits,
		probe:     probe,
	}
}

// ListOrganizations handles GET /organizations. It never fails: the
// directory degrades to cached or seed data on its own.
func (h *OrganizationHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	listing := h.directory.ListOrganizations(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"organizations": listing})
}

// ListDoctors handles GET /organizations/{id}/doctors. Only the
// organization's admin may read the roster; authorization completes before
// any patient or diagnosis data is touched.
func (h *OrganizationHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	defer func() {
		metrics.RosterDuration.Observe(time.Since(start).Seconds())
	}()

	if !h.probe(ctx) {
		metrics.RosterRequests.WithLabelValues("unavailable").Inc()
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"doctors": []models.RosterDoctor{}})
		return
	}

	orgID := chi.URLParam(r, "id")
	org, err := h.directory.Resolve(ctx, orgID)
	if errors.Is(err, services.ErrOrganizationNotFound) {
		metrics.RosterRequests.WithLabelValues("not_found").Inc()
		writeError(w, http.StatusNotFound, "organization not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("organization_id", orgID).Msg("Failed to resolve organization")
		metrics.RosterRequests.WithLabelValues("failure").Inc()
		writeError(w, http.StatusInternalServerError, "failed to load doctors")
		return
	}

	requester, err := h.guard.Authorize(r, org)
	if err != nil {
		h.denyDoctors(w, r, org, requester, err, start)
		return
	}

	doctors, err := h.roster.ListDoctorsWithRecords(ctx, org)
	if err != nil {
		log.Error().Err(err).Str("organization_id", orgID).Msg("Failed to assemble roster")
		metrics.RosterRequests.WithLabelValues("failure").Inc()
		h.recordAccess(r, orgID, requester, models.AuditOutcomeFailure, start)
		writeError(w, http.StatusInternalServerError, "failed to load doctors")
		return
	}

	metrics.RosterRequests.WithLabelValues("success").Inc()
	h.recordAccess(r, orgID, requester, models.AuditOutcomeSuccess, start)
	writeJSON(w, http.StatusOK, map[string]any{"doctors": doctors})
}

// ListAudit handles GET /organizations/{id}/audit, admin-only like the roster
func (h *OrganizationHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.probe(ctx) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"audit": []models.AccessAudit{}})
		return
	}

	orgID := chi.URLParam(r, "id")
	org, err := h.directory.Resolve(ctx, orgID)
	if errors.Is(err, services.ErrOrganizationNotFound) {
		writeError(w, http.StatusNotFound, "organization not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("organization_id", orgID).Msg("Failed to resolve organization")
		writeError(w, http.StatusInternalServerError, "failed to load audit log")
		return
	}

	if _, err := h.guard.Authorize(r, org); err != nil {
		writeError(w, statusForAuthError(err), err.Error())
		return
	}

	entries, err := h.audits.ListByOrganization(ctx, orgID, 100)
	if err != nil {
		log.Error().Err(err).Str("organization_id", orgID).Msg("Failed to load access audits")
		writeError(w, http.StatusInternalServerError, "failed to load audit log")
		return
	}
	if entries == nil {
		entries = []models.AccessAudit{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"audit": entries})
}

// denyDoctors maps an authorization failure onto the roster contract and
// audits the attempt.
func (h *OrganizationHandler) denyDoctors(w http.ResponseWriter, r *http.Request, org *models.Organization, requester string, err error, start time.Time) {
	status := statusForAuthError(err)
	if status == http.StatusForbidden {
		metrics.RosterRequests.WithLabelValues("forbidden").Inc()
		h.recordAccess(r, org.ID.String(), requester, models.AuditOutcomeForbidden, start)
	} else {
		metrics.RosterRequests.WithLabelValues("unauthenticated").Inc()
		h.recordAccess(r, org.ID.String(), requester, models.AuditOutcomeDenied, start)
	}
	writeError(w, status, err.Error())
}

func statusForAuthError(err error) int {
	if errors.Is(err, auth.ErrForbidden) {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}

// recordAccess appends an audit entry off the request path; failures are
// logged and dropped so auditing never affects the response.
func (h *OrganizationHandler) recordAccess(r *http.Request, orgID, requester, outcome string, start time.Time) {
	entry := &models.AccessAudit{
		OrganizationID: orgID,
		RequesterID:    requester,
		Outcome:        outcome,
		IPAddress:      r.RemoteAddr,
		Duration:       time.Since(start).Milliseconds(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.audits.Record(ctx, entry); err != nil {
			log.Debug().Err(err).Msg("Failed to record access audit")
		}
	}()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
