package checkin

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"commons-backend/internal/models"
)

func newCheckIn(status models.CheckInStatus, scope models.VisibilityScope, creator uuid.UUID, start time.Time, duration int) *models.CheckIn {
	return &models.CheckIn{
		ID:              uuid.New(),
		CreatorID:       creator,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
		VisibilityScope: scope,
	}
}

func TestActive_MixedSet(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	creator := uuid.New()

	open := newCheckIn(models.CheckInStatusActive, models.VisibilityCommunity, creator, now.Add(-10*time.Minute), 60)
	lapsed := newCheckIn(models.CheckInStatusActive, models.VisibilityCommunity, creator, now.Add(-2*time.Hour), 60)
	cancelled := newCheckIn(models.CheckInStatusCancelled, models.VisibilityCommunity, creator, now.Add(-5*time.Minute), 60)

	input := []*models.CheckIn{open, lapsed, cancelled}
	got := Active(input, now)

	if len(got) != 1 || got[0] != open {
		t.Fatalf("expected only the open active check-in, got %d records", len(got))
	}
	if len(input) != 3 || input[1] != lapsed || input[2] != cancelled {
		t.Fatalf("input slice must not be modified")
	}
	if lapsed.Status != models.CheckInStatusActive {
		t.Fatalf("filter must not write back a status, got %s", lapsed.Status)
	}
}

func TestActive_PreservesOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	creator := uuid.New()

	input := []*models.CheckIn{
		newCheckIn(models.CheckInStatusActive, models.VisibilityCommunity, creator, now, 30),
		newCheckIn(models.CheckInStatusActive, models.VisibilityCommunity, creator, now.Add(-time.Minute), 30),
		newCheckIn(models.CheckInStatusExpired, models.VisibilityCommunity, creator, now, 30),
		newCheckIn(models.CheckInStatusActive, models.VisibilityCommunity, creator, now.Add(-2*time.Minute), 30),
		newCheckIn(models.CheckInStatusActive, models.VisibilityCommunity, creator, now.Add(-3*time.Minute), 30),
		newCheckIn(models.CheckInStatusActive, models.VisibilityCommunity, creator, now.Add(-4*time.Minute), 30),
	}

	got := Active(input, now)
	if len(got) != 5 {
		t.Fatalf("expected 5 records, got %d", len(got))
	}
	want := []*models.CheckIn{input[0], input[1], input[3], input[4], input[5]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d out of order", i)
		}
	}
}

func TestVisible(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	userA, userB, userC := uuid.New(), uuid.New(), uuid.New()

	community := newCheckIn(models.CheckInStatusActive, models.VisibilityCommunity, userA, now, 60)
	privateA := newCheckIn(models.CheckInStatusActive, models.VisibilityPrivate, userA, now, 60)
	privateB := newCheckIn(models.CheckInStatusActive, models.VisibilityPrivate, userB, now, 60)
	input := []*models.CheckIn{community, privateA, privateB}

	got := Visible(input, userA)
	if len(got) != 2 || got[0] != community || got[1] != privateA {
		t.Fatalf("expected community and own private check-in for creator, got %d records", len(got))
	}

	got = Visible(input, userC)
	if len(got) != 1 || got[0] != community {
		t.Fatalf("expected only community check-in for unrelated viewer, got %d records", len(got))
	}
}

func TestActiveVisible_EndToEnd(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	creator1, creator2, creator3 := uuid.New(), uuid.New(), uuid.New()
	viewer := uuid.New()

	first := newCheckIn(models.CheckInStatusActive, models.VisibilityCommunity, creator1, now.Add(-10*time.Minute), 60)
	second := newCheckIn(models.CheckInStatusActive, models.VisibilityPrivate, creator2, now.Add(-2*time.Hour), 60)
	third := newCheckIn(models.CheckInStatusCancelled, models.VisibilityCommunity, creator3, now.Add(-5*time.Minute), 60)

	got := ActiveVisible([]*models.CheckIn{first, second, third}, viewer, now)
	if len(got) != 1 || got[0] != first {
		t.Fatalf("expected only the first check-in, got %d records", len(got))
	}
}

func TestActiveVisible_Empty(t *testing.T) {
	got := ActiveVisible(nil, uuid.New(), time.Now())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result")
	}
}
