package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/koyeliyag-code/healthsync/internal/models"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims models.TokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func rosterRequest(authHeader string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/organizations/abc/doctors", nil)
	if authHeader != "" {
		r.Header.Set("Authorization", authHeader)
	}
	return r
}

func TestAuthorize(t *testing.T) {
	admin := uuid.New()
	org := &models.Organization{ID: uuid.New(), Name: "Community Clinic A", AdminID: admin}
	guard := NewGuard(testSecret)

	adminToken := signToken(t, testSecret, models.TokenClaims{UserID: admin.String()})
	strangerToken := signToken(t, testSecret, models.TokenClaims{UserID: uuid.NewString()})
	noIDToken := signToken(t, testSecret, models.TokenClaims{Email: "someone@clinic.test"})
	wrongSecretToken := signToken(t, "other-secret", models.TokenClaims{UserID: admin.String()})
	expiredToken := signToken(t, testSecret, models.TokenClaims{
		UserID: admin.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"no header", "", ErrMissingToken},
		{"not bearer", "Basic abc123", ErrMissingToken},
		{"empty bearer", "Bearer ", ErrMissingToken},
		{"garbage token", "Bearer not.a.jwt", ErrInvalidToken},
		{"wrong secret", "Bearer " + wrongSecretToken, ErrInvalidToken},
		{"expired", "Bearer " + expiredToken, ErrInvalidToken},
		{"no requester id", "Bearer " + noIDToken, ErrInvalidRequester},
		{"not the admin", "Bearer " + strangerToken, ErrForbidden},
		{"admin", "Bearer " + adminToken, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requester, err := guard.Authorize(rosterRequest(tt.header), org)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authorize() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && CanonicalID(requester) != CanonicalID(admin.String()) {
				t.Errorf("expected requester %s, got %s", admin, requester)
			}
		})
	}
}

func TestAuthorizeCanonicalComparison(t *testing.T) {
	// Claim id and stored admin id may differ in case and padding
	admin := uuid.New()
	org := &models.Organization{ID: uuid.New(), AdminID: admin}
	guard := NewGuard(testSecret)

	mixedCase := "  " + strings.ToUpper(admin.String()) + " "
	token := signToken(t, testSecret, models.TokenClaims{UserID: mixedCase})

	if _, err := guard.Authorize(rosterRequest("Bearer "+token), org); err != nil {
		t.Fatalf("expected canonical match to authorize, got %v", err)
	}
}

func TestCanonicalID(t *testing.T) {
	tests := []struct{ in, want string }{
		{" ABC ", "abc"},
		{"5F1C", "5f1c"},
		{"dr.a@Clinic.Test", "dr.a@clinic.test"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CanonicalID(tt.in); got != tt.want {
			t.Errorf("CanonicalID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
