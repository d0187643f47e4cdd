package usecase

import (
	"testing"
	"time"

	"github.com/polkiloo/papermill/internal/domain/model"
)

func TestDeriveUrgencyBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		deadline time.Time
		want     model.Urgency
	}{
		{"already passed", now.Add(-time.Hour), model.UrgencyUrgent},
		{"within a day", now.Add(2 * time.Hour), model.UrgencyUrgent},
		{"exactly 24h", now.Add(24 * time.Hour), model.UrgencyUrgent},
		{"24h and a second", now.Add(24*time.Hour + time.Second), model.UrgencyRush},
		{"exactly 72h", now.Add(72 * time.Hour), model.UrgencyRush},
		{"72h and a second", now.Add(72*time.Hour + time.Second), model.UrgencyStandard},
		{"two weeks", now.Add(14 * 24 * time.Hour), model.UrgencyStandard},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveUrgency(tc.deadline, now); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
