package usecase

import (
	"time"

	"github.com/polkiloo/papermill/internal/domain/model"
)

const (
	urgentWindow = 24 * time.Hour
	rushWindow   = 72 * time.Hour
)

// DeriveUrgency classifies the time left until deadline. Both window bounds are inclusive.
func DeriveUrgency(deadline, now time.Time) model.Urgency {
	left := deadline.Sub(now)
	switch {
	case left <= urgentWindow:
		return model.UrgencyUrgent
	case left <= rushWindow:
		return model.UrgencyRush
	default:
		return model.UrgencyStandard
	}
}
