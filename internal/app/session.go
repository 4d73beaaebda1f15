package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"erp-dashboard/internal/core"
	"erp-dashboard/internal/storage"

	"github.com/google/uuid"
)

const (
	sessionKeyPrefix = "session:"
	profileKeyPrefix = "profile:"
)

// Session is a logged-in user. It is stored under session:<id> until
// logout or expiry.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *appService) sessionDoc(id string) *storage.Document[Session] {
	return storage.NewDocument[Session](s.store, sessionKeyPrefix+id, s.logger)
}

func (s *appService) Authenticate(ctx context.Context, req LoginRequest) (*Session, error) {
	u, err := s.credentials.Check(ctx, req.Email, req.Password)
	s.metrics.RecordLogin(err == nil)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	sess := Session{
		ID:        uuid.NewString(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessionDoc(sess.ID).Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	s.logger.WithField("email", sess.Email).Info("user logged in")
	return &sess, nil
}

func (s *appService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessionDoc(sessionID).Delete(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *appService) Session(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	doc := s.sessionDoc(sessionID)
	sess, err := doc.Get(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrCorrupt):
		return nil, ErrSessionNotFound
	case err != nil:
		return nil, err
	}
	if !s.clock().Before(sess.ExpiresAt) {
		if err := doc.Delete(ctx); err != nil {
			s.logger.WithError(err).Warn("expired session not removed")
		}
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *appService) profileDoc(email string) *storage.Document[core.Profile] {
	return storage.NewDocument[core.Profile](s.store, profileKeyPrefix+email, s.logger)
}

func (s *appService) GetProfile(ctx context.Context, email string) (*core.Profile, error) {
	u, err := s.credentials.Lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	p, err := s.profileDoc(u.Email).LoadOr(ctx, func() core.Profile { return core.DefaultProfile(u) })
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *appService) SaveProfile(ctx context.Context, req SaveProfileRequest) (*core.Profile, error) {
	u, err := s.credentials.Lookup(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	p, err := core.SubmitProfile(req.Fields)
	if err != nil {
		return nil, err
	}
	if err := s.profileDoc(u.Email).Put(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return &p, nil
}
