package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"commons-backend/internal/checkin"
	"commons-backend/internal/events"
	"commons-backend/internal/geo"
	"commons-backend/internal/logger"
	"commons-backend/internal/models"
)

const (
	maxTitleLength    = 120
	maxLocationLength = 200
	candidateLimit    = 500
)

type checkInRepository interface {
	Create(ctx context.Context, c *models.CheckIn) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CheckIn, error)
	ListCandidates(ctx context.Context, tenantID uuid.UUID, now time.Time, limit int) ([]*models.CheckIn, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.CheckIn, error)
}

type CheckInService struct {
	repo        checkInRepository
	events      events.Publisher
	now         func() time.Time
	maxDuration int
}

func NewCheckInService(repo checkInRepository, publisher events.Publisher, maxDurationMinutes int) *CheckInService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &CheckInService{
		repo:        repo,
		events:      publisher,
		now:         time.Now,
		maxDuration: maxDurationMinutes,
	}
}

// List returns the tenant's check-ins that are active and visible to viewerID
// at a single instant, newest first.
func (s *CheckInService) List(ctx context.Context, tenantID, viewerID uuid.UUID) ([]*models.CheckIn, error) {
	now := s.now()

	candidates, err := s.repo.ListCandidates(ctx, tenantID, now, candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}

	return checkin.ActiveVisible(candidates, viewerID, now), nil
}

func (s *CheckInService) Get(ctx context.Context, tenantID, viewerID, id uuid.UUID) (*models.CheckInDetail, error) {
	c, err := s.visibleCheckIn(ctx, tenantID, viewerID, id)
	if err != nil {
		return nil, err
	}

	return s.detail(c, s.now()), nil
}

func (s *CheckInService) Create(ctx context.Context, tenantID, creatorID uuid.UUID, req models.CreateCheckInRequest) (*models.CheckIn, error) {
	now := s.now()

	c, err := s.validateCreate(req, now)
	if err != nil {
		return nil, err
	}
	c.TenantID = tenantID
	c.CreatorID = creatorID

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create check-in: %w", err)
	}

	s.publish(ctx, events.TypeCheckInCreated, c)
	return c, nil
}

// Cancel ends a check-in early. Only the creator may cancel, and only while
// the check-in is still active.
func (s *CheckInService) Cancel(ctx context.Context, tenantID, viewerID, id uuid.UUID) (*models.CheckIn, error) {
	c, err := s.visibleCheckIn(ctx, tenantID, viewerID, id)
	if err != nil {
		return nil, err
	}

	if c.CreatorID != viewerID {
		return nil, &ForbiddenError{Message: "Only the creator can cancel a check-in"}
	}

	if state := checkin.StateAt(c, s.now()); state != checkin.StateActive {
		return nil, &ConflictError{Message: fmt.Sprintf("Check-in is already %s", state)}
	}

	updated, err := s.repo.Cancel(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ConflictError{Message: "Check-in is no longer active"}
		}
		return nil, fmt.Errorf("failed to cancel check-in: %w", err)
	}

	s.publish(ctx, events.TypeCheckInCancelled, updated)
	return updated, nil
}

// Map returns the active, visible check-ins that carry coordinates together
// with their centroid. Center is nil when none do.
func (s *CheckInService) Map(ctx context.Context, tenantID, viewerID uuid.UUID) (*models.CheckInMap, error) {
	active, err := s.List(ctx, tenantID, viewerID)
	if err != nil {
		return nil, err
	}

	result := &models.CheckInMap{CheckIns: []*models.CheckIn{}}
	var points []geo.Point
	for _, c := range active {
		if c.Latitude == nil || c.Longitude == nil {
			continue
		}
		result.CheckIns = append(result.CheckIns, c)
		points = append(points, geo.Point{Latitude: *c.Latitude, Longitude: *c.Longitude})
	}

	if center, ok := geo.Centroid(points); ok {
		result.Center = &center
	}
	return result, nil
}

func (s *CheckInService) visibleCheckIn(ctx context.Context, tenantID, viewerID, id uuid.UUID) (*models.CheckIn, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Check-in not found"}
		}
		return nil, fmt.Errorf("failed to load check-in: %w", err)
	}

	// Private check-ins of other residents are reported as missing.
	if c.TenantID != tenantID || !checkin.CanView(c, viewerID) {
		return nil, &NotFoundError{Message: "Check-in not found"}
	}
	return c, nil
}

func (s *CheckInService) detail(c *models.CheckIn, now time.Time) *models.CheckInDetail {
	d := &models.CheckInDetail{
		CheckIn:   c,
		ExpiresAt: checkin.ExpiresAt(c.StartTime, c.DurationMinutes),
		State:     string(checkin.StateAt(c, now)),
	}
	if d.State == string(checkin.StateActive) {
		d.MinutesRemaining = checkin.TimeRemainingMinutes(c.StartTime, c.DurationMinutes, now)
	}
	d.Remaining = checkin.FormatRemaining(d.MinutesRemaining)
	return d
}

func (s *CheckInService) validateCreate(req models.CreateCheckInRequest, now time.Time) (*models.CheckIn, error) {
	fields := make(map[string]string)

	title := strings.TrimSpace(req.Title)
	switch {
	case title == "":
		fields["title"] = "Title is required"
	case utf8.RuneCountInString(title) > maxTitleLength:
		fields["title"] = fmt.Sprintf("Title must be at most %d characters", maxTitleLength)
	}

	location := strings.TrimSpace(req.LocationName)
	if utf8.RuneCountInString(location) > maxLocationLength {
		fields["location_name"] = fmt.Sprintf("Location must be at most %d characters", maxLocationLength)
	}

	if req.DurationMinutes < 1 || req.DurationMinutes > s.maxDuration {
		fields["duration_minutes"] = fmt.Sprintf("Duration must be between 1 and %d minutes", s.maxDuration)
	}

	scope := req.VisibilityScope
	if scope == "" {
		scope = models.VisibilityCommunity
	}
	if scope != models.VisibilityCommunity && scope != models.VisibilityPrivate {
		fields["visibility_scope"] = "Visibility must be community or private"
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		fields["coordinates"] = "Latitude and longitude must be provided together"
	} else if req.Latitude != nil && !(geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}).Valid() {
		fields["coordinates"] = "Coordinates are out of range"
	}

	start := now
	if req.StartTime != nil && !req.StartTime.IsZero() {
		start = *req.StartTime
	}
	if _, bad := fields["duration_minutes"]; !bad && checkin.IsExpired(start, req.DurationMinutes, now) {
		fields["start_time"] = "Check-in window has already ended"
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return &models.CheckIn{
		Title:           title,
		LocationName:    location,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		StartTime:       start.UTC(),
		DurationMinutes: req.DurationMinutes,
		VisibilityScope: scope,
	}, nil
}

func (s *CheckInService) publish(ctx context.Context, eventType string, c *models.CheckIn) {
	event := models.CheckInEvent{Type: eventType, TenantID: c.TenantID, CheckIn: c}
	if err := s.events.Publish(ctx, events.TenantTopic(c.TenantID), event); err != nil {
		logger.Logger.Warn("Failed to publish check-in event",
			zap.String("type", eventType),
			zap.String("check_in_id", c.ID.String()),
			zap.Error(err),
		)
	}
}
