package repository

import (
	"strings"
	"testing"
)

func TestListCandidatesQuery_SelectsOnlyOpenActiveWindows(t *testing.T) {
	for _, want := range []string{
		"tenant_id = $1",
		"status = 'active'",
		windowEnd + " > $2",
		"ORDER BY start_time > $2, start_time DESC",
		"LIMIT $3",
	} {
		if !strings.Contains(listCandidatesQuery, want) {
			t.Errorf("expected candidate query to contain %q", want)
		}
	}

	if strings.Contains(listCandidatesQuery, "start_time >=") {
		t.Errorf("candidate query must bound on window end, not start time")
	}
}

func TestMarkExpiredQuery_IsComplementOfCandidates(t *testing.T) {
	for _, want := range []string{
		"SET status = 'expired'",
		"status = 'active'",
		windowEnd + " <= $1",
	} {
		if !strings.Contains(markExpiredQuery, want) {
			t.Errorf("expected expiry query to contain %q", want)
		}
	}
}
