package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestJWTAuth_TokenRoundTrip(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	userID, tenantID := uuid.New(), uuid.New()

	token, err := auth.GenerateAccessToken(userID, tenantID, time.Minute)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	identity, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if identity.UserID != userID || identity.TenantID != tenantID {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestJWTAuth_ParseToken_Errors(t *testing.T) {
	auth := NewJWTAuth("test-secret")

	expired, _ := auth.GenerateAccessToken(uuid.New(), uuid.New(), -time.Minute)
	if _, err := auth.ParseToken(expired); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	other, _ := NewJWTAuth("other-secret").GenerateAccessToken(uuid.New(), uuid.New(), time.Minute)
	if _, err := auth.ParseToken(other); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong signature, got %v", err)
	}

	noTenant := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(time.Minute).Unix(),
	})
	signed, _ := noTenant.SignedString(auth.Secret)
	if _, err := auth.ParseToken(signed); err != ErrInvalidClaims {
		t.Fatalf("expected ErrInvalidClaims without tenant_id, got %v", err)
	}
}

func TestJWTAuth_Middleware(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	userID, tenantID := uuid.New(), uuid.New()
	token, _ := auth.GenerateAccessToken(userID, tenantID, time.Minute)

	var gotUser, gotTenant uuid.UUID
	h := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUserID(r.Context())
		gotTenant = GetTenantID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name     string
		header   string
		expected int
		code     string
	}{
		{"valid token", "Bearer " + token, http.StatusNoContent, ""},
		{"missing header", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, "UNAUTHORIZED"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/check-ins", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			h.ServeHTTP(rr, req)

			if rr.Code != tc.expected {
				t.Fatalf("expected status %d, got %d", tc.expected, rr.Code)
			}
			if tc.code == "" {
				return
			}

			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if body.Error.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, body.Error.Code)
			}
		})
	}

	if gotUser != userID || gotTenant != tenantID {
		t.Fatalf("expected identity in context, got user=%s tenant=%s", gotUser, gotTenant)
	}
}
