package service

import (
	"context"
	"time"

	"alcyxob/fitness-coach/internal/auth"
	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"

	"github.com/rs/zerolog"
)

// Profile is the caller's user record with derived fields.
type Profile struct {
	domain.User
	DisplayName string `json:"display_name"`
}

func newProfile(u domain.User) *Profile {
	return &Profile{User: u, DisplayName: u.DisplayName()}
}

// Entitlement is the billing provider's last-known view of a subscription.
type Entitlement struct {
	IsPremium bool       `json:"is_premium"`
	ExpiresAt *time.Time `json:"premium_expires_at"`
	WillRenew *bool      `json:"premium_will_renew"`
}

// ProfileService exposes the caller's own profile.
type ProfileService interface {
	Me(ctx context.Context, principal auth.Principal) (*Profile, error)
	SyncEntitlement(ctx context.Context, principal auth.Principal, e Entitlement) (*Profile, error)
}

type profileService struct {
	userRepo repository.UserRepository
	log      zerolog.Logger
}

// NewProfileService creates the profile service.
func NewProfileService(userRepo repository.UserRepository, logger zerolog.Logger) ProfileService {
	return &profileService{userRepo: userRepo, log: logger}
}

func (s *profileService) Me(ctx context.Context, principal auth.Principal) (*Profile, error) {
	if principal.AppUserID == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.GetByAppUserID(ctx, principal.AppUserID)
	if err != nil {
		return nil, err
	}
	return newProfile(user), nil
}

// SyncEntitlement stores the provider's entitlement on the caller's user record as is.
func (s *profileService) SyncEntitlement(ctx context.Context, principal auth.Principal, e Entitlement) (*Profile, error) {
	if principal.AppUserID == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.GetByAppUserID(ctx, principal.AppUserID)
	if err != nil {
		return nil, err
	}

	user.IsPremium = e.IsPremium
	user.PremiumExpiresAt = e.ExpiresAt
	user.PremiumWillRenew = e.WillRenew

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int64("user_id", int64(updated.ID)).
		Bool("is_premium", updated.IsPremium).
		Msg("entitlement synced")
	return newProfile(updated), nil
}
