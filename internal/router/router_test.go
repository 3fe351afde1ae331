package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"commons-backend/internal/handlers"
	"commons-backend/internal/middleware"
	"commons-backend/internal/models"
)

type emptyService struct{}

func (emptyService) List(ctx context.Context, tenantID, viewerID uuid.UUID) ([]*models.CheckIn, error) {
	return []*models.CheckIn{}, nil
}

func (emptyService) Get(ctx context.Context, tenantID, viewerID, id uuid.UUID) (*models.CheckInDetail, error) {
	return &models.CheckInDetail{CheckIn: &models.CheckIn{ID: id}}, nil
}

func (emptyService) Create(ctx context.Context, tenantID, creatorID uuid.UUID, req models.CreateCheckInRequest) (*models.CheckIn, error) {
	return &models.CheckIn{ID: uuid.New()}, nil
}

func (emptyService) Cancel(ctx context.Context, tenantID, viewerID, id uuid.UUID) (*models.CheckIn, error) {
	return &models.CheckIn{ID: id}, nil
}

func (emptyService) Map(ctx context.Context, tenantID, viewerID uuid.UUID) (*models.CheckInMap, error) {
	return &models.CheckInMap{CheckIns: []*models.CheckIn{}}, nil
}

func newTestRouter() (http.Handler, *middleware.JWTAuth) {
	auth := middleware.NewJWTAuth("router-secret")
	return New(Deps{
		JWTAuth:     auth,
		RateLimiter: middleware.NewRateLimiter(nil, 60, time.Minute, "rate:api"),
		CheckIns:    handlers.NewCheckInHandler(emptyService{}),
		Health:      handlers.NewHealthHandler(nil),
		WebSocket:   func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) },
		FrontendURL: "http://localhost:3000",
	}), auth
}

func TestRouter_Routes(t *testing.T) {
	h, auth := newTestRouter()
	token, _ := auth.GenerateAccessToken(uuid.New(), uuid.New(), time.Minute)
	id := uuid.New().String()

	tests := []struct {
		name     string
		method   string
		path     string
		authed   bool
		expected int
	}{
		{"health is public", http.MethodGet, "/health", false, http.StatusOK},
		{"list requires auth", http.MethodGet, "/api/v1/check-ins", false, http.StatusUnauthorized},
		{"list", http.MethodGet, "/api/v1/check-ins", true, http.StatusOK},
		{"map is not an id", http.MethodGet, "/api/v1/check-ins/map", true, http.StatusOK},
		{"get", http.MethodGet, "/api/v1/check-ins/" + id, true, http.StatusOK},
		{"cancel", http.MethodPost, "/api/v1/check-ins/" + id + "/cancel", true, http.StatusOK},
		{"websocket mounted", http.MethodGet, "/api/v1/ws", false, http.StatusTeapot},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.authed {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tc.expected {
				t.Fatalf("expected status %d, got %d", tc.expected, rr.Code)
			}
			if rr.Header().Get(middleware.RequestIDHeader) == "" {
				t.Fatalf("expected request id header on every response")
			}
		})
	}
}
