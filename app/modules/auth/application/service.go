// Package authservice sits at the authenticated-identity boundary: it receives
// already-validated external profiles and keeps the corresponding application
// user current. OAuth negotiation itself happens outside the core.
package authservice

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	userservice "github.com/soundcord/soundcord-bot/app/modules/user/application"
	userdomain "github.com/soundcord/soundcord-bot/app/modules/user/domain"
)

// Profile is a validated external-provider identity.
type Profile struct {
	ID          string
	Provider    string
	Username    string
	DisplayName string
	Avatar      *string
}

// AuthService composes the user use cases behind the login flow and maps
// their outcomes to external faults.
type AuthService struct {
	users     userservice.Service
	logger    *slog.Logger
	tracer    trace.Tracer
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users userservice.Service, logger *slog.Logger, tracer trace.Tracer, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("authservice")
	}
	return &AuthService{
		users:     users,
		logger:    logger,
		tracer:    tracer,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// ValidateOrCreateUser ensures an application user exists for the profile.
// An existing user is patched only when the profile carries changed fields; a
// new user is created on first login. Errors surface as classified faults.
func (s *AuthService) ValidateOrCreateUser(ctx context.Context, profile Profile) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.ValidateOrCreateUser")
	defer span.End()

	user, err := s.users.GetUser(ctx, profile.ID)
	if err == nil {
		return s.maybeUpdateUser(ctx, user, profile)
	}
	if !errors.Is(err, userservice.ErrUserNotFound) {
		s.logger.Error("Failed to look up user at login",
			slog.String("user_id", profile.ID),
			slog.Any("error", err),
		)
		return nil, userservice.AsFault(err)
	}

	s.logger.Debug("User not found at login, creating",
		slog.String("provider", profile.Provider),
		slog.String("user_id", profile.ID),
	)

	created, err := s.users.CreateUser(ctx, userdomain.CreateProps{
		ID:          profile.ID,
		Provider:    profile.Provider,
		Username:    profile.Username,
		DisplayName: profile.DisplayName,
		Avatar:      profile.Avatar,
	})
	if err != nil {
		return nil, userservice.AsFault(err)
	}
	return created, nil
}

// maybeUpdateUser patches only the fields that differ between the stored user
// and the incoming profile, skipping the write entirely when nothing changed.
func (s *AuthService) maybeUpdateUser(ctx context.Context, user *userdomain.User, profile Profile) (*userdomain.User, error) {
	var patch userdomain.Patch

	if user.Username != profile.Username {
		patch.Username = &profile.Username
	}
	if user.DisplayName != profile.DisplayName {
		patch.DisplayName = &profile.DisplayName
	}
	if profile.Avatar != nil && (user.Avatar == nil || *user.Avatar != *profile.Avatar) {
		patch.Avatar = profile.Avatar
	}

	if patch.IsEmpty() {
		return user, nil
	}

	updated, err := s.users.UpdateUser(ctx, user.ID, patch)
	if err != nil {
		return nil, userservice.AsFault(err)
	}
	return updated, nil
}
