package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitnesspro/fitnesspro-backend/internal/profiles"
	"github.com/fitnesspro/fitnesspro-backend/internal/users"
	"github.com/fitnesspro/fitnesspro-backend/pkg/auth"
	"github.com/fitnesspro/fitnesspro-backend/pkg/auth/session"
	"github.com/fitnesspro/fitnesspro-backend/pkg/config"
	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	pkgerrors "github.com/fitnesspro/fitnesspro-backend/pkg/errors"
	"github.com/fitnesspro/fitnesspro-backend/pkg/logger"
	"github.com/fitnesspro/fitnesspro-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Failed lookups and bad passwords return the same message so the endpoint
// cannot be used to probe which emails exist.
const invalidCredentialsMessage = "invalid email or password"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, input LoginInput, clientIP string) (*AuthResultDTO, error)
	Refresh(ctx context.Context, input RefreshInput) (*TokenPairDTO, error)
	Logout(ctx context.Context, accessID string) error
	Me(ctx context.Context, userID uuid.UUID) (*AccountDTO, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, input UpdateAccountInput) (*AccountDTO, error)
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type roleRepository interface {
	PrimaryRole(ctx context.Context, userID uuid.UUID) (enums.AppRole, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]enums.AppRole, error)
}

type profileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type loginLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type service struct {
	users     userRepository
	roles     roleRepository
	profiles  profileRepository
	sessions  sessionManager
	limiter   loginLimiter
	jwt       config.JWTConfig
	password  config.PasswordConfig
	rateLimit config.AuthRateLimitConfig
	logg      *logger.Logger
	now       func() time.Time
}

// ServiceParams bundles the dependencies required to build an identity service.
type ServiceParams struct {
	UserRepo    userRepository
	RoleRepo    roleRepository
	ProfileRepo profileRepository
	Sessions    sessionManager
	Limiter     loginLimiter
	JWT         config.JWTConfig
	Password    config.PasswordConfig
	RateLimit   config.AuthRateLimitConfig
	Logger      *logger.Logger
	Now         func() time.Time
}

// NewService constructs an identity service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.RoleRepo == nil {
		return nil, fmt.Errorf("role repository is required")
	}
	if params.ProfileRepo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:     params.UserRepo,
		roles:     params.RoleRepo,
		profiles:  params.ProfileRepo,
		sessions:  params.Sessions,
		limiter:   params.Limiter,
		jwt:       params.JWT,
		password:  params.Password,
		rateLimit: params.RateLimit,
		logg:      params.Logger,
		now:       now,
	}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput, clientIP string) (*AuthResultDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	if err := s.allowLogin(ctx, email, clientIP); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	match, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is deactivated")
	}

	role, err := s.roles.PrimaryRole(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve role")
	}

	pair, err := s.issueTokens(ctx, user.ID, role)
	if err != nil {
		return nil, err
	}

	s.recordLogin(ctx, user)

	return &AuthResultDTO{
		TokenPairDTO: *pair,
		User:         users.FromModel(user),
		Role:         role,
	}, nil
}

func (s *service) Refresh(ctx context.Context, input RefreshInput) (*TokenPairDTO, error) {
	claims, err := auth.ParseAccessTokenAllowExpired(s.jwt, input.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, input.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	// Role grants may have changed since the token was issued.
	role, err := s.roles.PrimaryRole(ctx, claims.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve role")
	}

	token, err := auth.MintAccessToken(s.jwt, s.now(), auth.AccessTokenPayload{
		UserID: claims.UserID,
		Role:   role,
		JTI:    newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return s.tokenPair(token, newRefresh), nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session identifier")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*AccountDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	granted, err := s.roles.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list roles")
	}

	account := &AccountDTO{
		User:  users.FromModel(user),
		Roles: granted,
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err == nil {
		account.Profile = profiles.FromModel(profile)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
	}

	return account, nil
}

func (s *service) UpdateAccount(ctx context.Context, userID uuid.UUID, input UpdateAccountInput) (*AccountDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
		if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing.ID != userID {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
		}
		if err := s.users.UpdateEmail(ctx, userID, email); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update email")
		}
	}

	if input.NewPassword != nil {
		if len(*input.NewPassword) < 6 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "new password must be at least 6 characters")
		}
		if input.CurrentPassword == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "current password is required to set a new one")
		}
		match, err := security.VerifyPassword(*input.CurrentPassword, user.PasswordHash)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
		}
		if !match {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
		}
		hash, err := security.HashPassword(*input.NewPassword, s.password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
		}
	}

	return s.Me(ctx, userID)
}

// allowLogin throttles attempts per email and per source IP. Limiter outages
// fail open so Redis downtime does not lock everyone out.
func (s *service) allowLogin(ctx context.Context, email, clientIP string) error {
	if s.limiter == nil || s.rateLimit.LoginWindow <= 0 {
		return nil
	}

	scopes := []struct {
		scope string
		limit int64
	}{
		{"login:email:" + email, int64(s.rateLimit.LoginEmailLimit)},
		{"login:ip:" + clientIP, int64(s.rateLimit.LoginIPLimit)},
	}
	for _, sc := range scopes {
		if sc.limit <= 0 {
			continue
		}
		allowed, _, err := s.limiter.FixedWindowAllow(ctx, sc.scope, sc.limit, s.rateLimit.LoginWindow)
		if err != nil {
			if s.logg != nil {
				s.logg.Warn(ctx, "login rate limiter unavailable: "+err.Error())
			}
			return nil
		}
		if !allowed {
			return pkgerrors.New(pkgerrors.CodeRateLimited, "too many login attempts, try again later")
		}
	}
	return nil
}

func (s *service) issueTokens(ctx context.Context, userID uuid.UUID, role enums.AppRole) (*TokenPairDTO, error) {
	accessID := session.NewAccessID()
	token, err := auth.MintAccessToken(s.jwt, s.now(), auth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	return s.tokenPair(token, refresh), nil
}

func (s *service) tokenPair(access, refresh string) *TokenPairDTO {
	return &TokenPairDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.jwt.ExpirationMinutes * 60,
	}
}

// recordLogin stamps last_login_at. Failures are logged, never surfaced.
func (s *service) recordLogin(ctx context.Context, user *models.User) {
	at := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, at); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "failed to record last login: "+err.Error())
	}
	user.LastLoginAt = &at
}
