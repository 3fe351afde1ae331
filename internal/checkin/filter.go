package checkin

import (
	"time"

	"github.com/google/uuid"

	"commons-backend/internal/models"
)

// Active keeps the check-ins whose status is active and whose window is still
// open at now. Input order is preserved and the input slice is not touched.
func Active(items []*models.CheckIn, now time.Time) []*models.CheckIn {
	out := make([]*models.CheckIn, 0, len(items))
	for _, c := range items {
		if c.Status != models.CheckInStatusActive {
			continue
		}
		if IsExpired(c.StartTime, c.DurationMinutes, now) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CanView reports whether viewerID may see c: community check-ins are visible
// to everyone, and creators always see their own.
func CanView(c *models.CheckIn, viewerID uuid.UUID) bool {
	return c.VisibilityScope == models.VisibilityCommunity || c.CreatorID == viewerID
}

// Visible keeps the check-ins viewerID may see, in input order.
func Visible(items []*models.CheckIn, viewerID uuid.UUID) []*models.CheckIn {
	out := make([]*models.CheckIn, 0, len(items))
	for _, c := range items {
		if CanView(c, viewerID) {
			out = append(out, c)
		}
	}
	return out
}

// ActiveVisible runs Active then Visible against a single instant.
func ActiveVisible(items []*models.CheckIn, viewerID uuid.UUID, now time.Time) []*models.CheckIn {
	return Visible(Active(items, now), viewerID)
}
