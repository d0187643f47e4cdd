package auth

import (
	"time"

	"github.com/polkiloo/papermill/internal/domain/model"
)

// Strategy issues and verifies bearer tokens for actors.
type Strategy interface {
	IssueToken(actor model.Actor) (string, error)
	ParseToken(token string) (model.Actor, error)
	Name() string
}

type Options struct {
	TTL    time.Duration
	Issuer string
}
