// Package api exposes the safety service's operation surface.
//
// Operations take plain request structs and return plain response structs.
// Caller identity arrives through requestctx; every operation rejects an
// anonymous caller before touching the store.
package api

import (
	"context"
	"time"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
	"github.com/festsafe/festsafe/internal/platform/id"
	"github.com/festsafe/festsafe/internal/platform/requestctx"
	"github.com/festsafe/festsafe/internal/services/safety/domain/invite"
	"github.com/festsafe/festsafe/internal/services/safety/storage"
)

// Stores bundles the persistence interfaces the service depends on.
type Stores struct {
	Events  storage.EventStore
	Members storage.MemberStore
	Invites storage.InviteStore
	Reports storage.ReportStore
}

// Service implements the safety operation surface over the stores.
type Service struct {
	stores Stores

	// Injectable for tests.
	now          func() time.Time
	newID        func() (string, error)
	generateCode func() (string, error)
}

// Option customizes service construction.
type Option func(*Service)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides entity id generation.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithCodeGenerator overrides invite code candidate generation.
func WithCodeGenerator(generate func() (string, error)) Option {
	return func(s *Service) {
		if generate != nil {
			s.generateCode = generate
		}
	}
}

// NewService builds a safety service over the given stores.
func NewService(stores Stores, opts ...Option) *Service {
	s := &Service{
		stores:       stores,
		now:          time.Now,
		newID:        id.NewID,
		generateCode: invite.GenerateCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// requireCaller extracts the authenticated user id from context.
func requireCaller(ctx context.Context) (string, error) {
	userID := requestctx.UserIDFromContext(ctx)
	if userID == "" {
		return "", apperrors.New(apperrors.CodeCallerRequired, "caller identity is required")
	}
	return userID, nil
}
