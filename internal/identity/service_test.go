package identity

import (
	"context"
	"testing"
	"time"

	"github.com/fitnesspro/fitnesspro-backend/pkg/auth"
	"github.com/fitnesspro/fitnesspro-backend/pkg/config"
	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	pkgerrors "github.com/fitnesspro/fitnesspro-backend/pkg/errors"
	"github.com/fitnesspro/fitnesspro-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var testPasswordConfig = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

var testJWTConfig = config.JWTConfig{
	Secret:                 "test-secret",
	Issuer:                 "fitnesspro-test",
	ExpirationMinutes:      15,
	RefreshTokenTTLMinutes: 60,
}

type stubUserRepo struct {
	byEmail       map[string]*models.User
	byID          map[uuid.UUID]*models.User
	lastLoginSet  bool
	emailSet      *string
	passwordHash  *string
	lastLoginUser uuid.UUID
}

func newStubUserRepo(user *models.User) *stubUserRepo {
	repo := &stubUserRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
	if user != nil {
		repo.byEmail[user.Email] = user
		repo.byID[user.ID] = user
	}
	return repo
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLoginSet = true
	s.lastLoginUser = id
	return nil
}

func (s *stubUserRepo) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	s.emailSet = &email
	return nil
}

func (s *stubUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	s.passwordHash = &hash
	return nil
}

type stubRoleRepo struct {
	primary enums.AppRole
	granted []enums.AppRole
}

func (s *stubRoleRepo) PrimaryRole(ctx context.Context, userID uuid.UUID) (enums.AppRole, error) {
	return s.primary, nil
}

func (s *stubRoleRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]enums.AppRole, error) {
	return s.granted, nil
}

type stubProfileRepo struct{}

func (s *stubProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return nil, gorm.ErrRecordNotFound
}

type stubSessionManager struct {
	generated string
	revokedID string
	rotateErr error
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = "refresh-" + accessID
	return s.generated, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return "new-access-id", "new-refresh-token", nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revokedID = accessID
	return nil
}

type stubLimiter struct {
	allowed bool
	calls   int
}

func (s *stubLimiter) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	s.calls++
	return s.allowed, 1, nil
}

func newTestUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
}

func newIdentityService(t *testing.T, params ServiceParams) Service {
	t.Helper()
	if params.JWT.Secret == "" {
		params.JWT = testJWTConfig
	}
	if params.Password.ArgonMemoryKB == 0 {
		params.Password = testPasswordConfig
	}
	svc, err := NewService(params)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestLogin_Succeeds(t *testing.T) {
	user := newTestUser(t, "anna@studio.it", "s3cret-pass")
	userRepo := newStubUserRepo(user)
	sessions := &stubSessionManager{}
	svc := newIdentityService(t, ServiceParams{
		UserRepo:    userRepo,
		RoleRepo:    &stubRoleRepo{primary: enums.AppRoleAdmin},
		ProfileRepo: &stubProfileRepo{},
		Sessions:    sessions,
	})

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    " Anna@Studio.IT ",
		Password: "s3cret-pass",
	}, "203.0.113.9")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Role != enums.AppRoleAdmin {
		t.Fatalf("expected admin role, got %s", result.Role)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}
	if !userRepo.lastLoginSet || userRepo.lastLoginUser != user.ID {
		t.Fatal("expected last login to be recorded")
	}

	claims, err := auth.ParseAccessToken(testJWTConfig, result.AccessToken)
	if err != nil {
		t.Fatalf("minted token does not parse: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != enums.AppRoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLogin_SameMessageForUnknownEmailAndBadPassword(t *testing.T) {
	user := newTestUser(t, "anna@studio.it", "s3cret-pass")
	svc := newIdentityService(t, ServiceParams{
		UserRepo:    newStubUserRepo(user),
		RoleRepo:    &stubRoleRepo{primary: enums.AppRoleUser},
		ProfileRepo: &stubProfileRepo{},
		Sessions:    &stubSessionManager{},
	})

	_, unknownErr := svc.Login(context.Background(), LoginInput{Email: "ghost@studio.it", Password: "whatever"}, "")
	_, badPassErr := svc.Login(context.Background(), LoginInput{Email: "anna@studio.it", Password: "wrong"}, "")

	for _, err := range []error{unknownErr, badPassErr} {
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected UNAUTHORIZED, got %v", err)
		}
		if typed.Message() != invalidCredentialsMessage {
			t.Fatalf("credential errors must not reveal which field failed: %q", typed.Message())
		}
	}
}

func TestLogin_RejectsInactiveAccount(t *testing.T) {
	user := newTestUser(t, "anna@studio.it", "s3cret-pass")
	user.IsActive = false
	svc := newIdentityService(t, ServiceParams{
		UserRepo:    newStubUserRepo(user),
		RoleRepo:    &stubRoleRepo{primary: enums.AppRoleUser},
		ProfileRepo: &stubProfileRepo{},
		Sessions:    &stubSessionManager{},
	})

	_, err := svc.Login(context.Background(), LoginInput{Email: "anna@studio.it", Password: "s3cret-pass"}, "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestLogin_RateLimited(t *testing.T) {
	user := newTestUser(t, "anna@studio.it", "s3cret-pass")
	limiter := &stubLimiter{allowed: false}
	svc := newIdentityService(t, ServiceParams{
		UserRepo:    newStubUserRepo(user),
		RoleRepo:    &stubRoleRepo{primary: enums.AppRoleUser},
		ProfileRepo: &stubProfileRepo{},
		Sessions:    &stubSessionManager{},
		Limiter:     limiter,
		RateLimit: config.AuthRateLimitConfig{
			LoginWindow:     time.Minute,
			LoginEmailLimit: 5,
			LoginIPLimit:    20,
		},
	})

	_, err := svc.Login(context.Background(), LoginInput{Email: "anna@studio.it", Password: "s3cret-pass"}, "203.0.113.9")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeRateLimited {
		t.Fatalf("expected RATE_LIMITED, got %v", err)
	}
	if limiter.calls == 0 {
		t.Fatal("expected the limiter to be consulted")
	}
}

func TestRefresh_RotatesSession(t *testing.T) {
	user := newTestUser(t, "anna@studio.it", "s3cret-pass")
	svc := newIdentityService(t, ServiceParams{
		UserRepo:    newStubUserRepo(user),
		RoleRepo:    &stubRoleRepo{primary: enums.AppRoleClient},
		ProfileRepo: &stubProfileRepo{},
		Sessions:    &stubSessionManager{},
	})

	access, err := auth.MintAccessToken(testJWTConfig, time.Now(), auth.AccessTokenPayload{
		UserID: user.ID,
		Role:   enums.AppRoleClient,
		JTI:    "old-access-id",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), RefreshInput{
		AccessToken:  access,
		RefreshToken: "stored-refresh-token",
	})
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if pair.RefreshToken != "new-refresh-token" {
		t.Fatalf("expected rotated refresh token, got %q", pair.RefreshToken)
	}

	claims, err := auth.ParseAccessToken(testJWTConfig, pair.AccessToken)
	if err != nil {
		t.Fatalf("rotated token does not parse: %v", err)
	}
	if claims.ID != "new-access-id" {
		t.Fatalf("expected new jti, got %q", claims.ID)
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	sessions := &stubSessionManager{}
	svc := newIdentityService(t, ServiceParams{
		UserRepo:    newStubUserRepo(nil),
		RoleRepo:    &stubRoleRepo{},
		ProfileRepo: &stubProfileRepo{},
		Sessions:    sessions,
	})

	if err := svc.Logout(context.Background(), "access-123"); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if sessions.revokedID != "access-123" {
		t.Fatalf("expected session access-123 revoked, got %q", sessions.revokedID)
	}
}

func TestUpdateAccount_RequiresCurrentPassword(t *testing.T) {
	user := newTestUser(t, "anna@studio.it", "s3cret-pass")
	svc := newIdentityService(t, ServiceParams{
		UserRepo:    newStubUserRepo(user),
		RoleRepo:    &stubRoleRepo{granted: []enums.AppRole{enums.AppRoleUser}},
		ProfileRepo: &stubProfileRepo{},
		Sessions:    &stubSessionManager{},
	})

	newPass := "brand-new-pass"
	_, err := svc.UpdateAccount(context.Background(), user.ID, UpdateAccountInput{NewPassword: &newPass})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	wrong := "not-the-password"
	_, err = svc.UpdateAccount(context.Background(), user.ID, UpdateAccountInput{
		CurrentPassword: &wrong,
		NewPassword:     &newPass,
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestUpdateAccount_ChangesPassword(t *testing.T) {
	user := newTestUser(t, "anna@studio.it", "s3cret-pass")
	userRepo := newStubUserRepo(user)
	svc := newIdentityService(t, ServiceParams{
		UserRepo:    userRepo,
		RoleRepo:    &stubRoleRepo{granted: []enums.AppRole{enums.AppRoleUser}},
		ProfileRepo: &stubProfileRepo{},
		Sessions:    &stubSessionManager{},
	})

	current := "s3cret-pass"
	newPass := "brand-new-pass"
	if _, err := svc.UpdateAccount(context.Background(), user.ID, UpdateAccountInput{
		CurrentPassword: &current,
		NewPassword:     &newPass,
	}); err != nil {
		t.Fatalf("UpdateAccount failed: %v", err)
	}
	if userRepo.passwordHash == nil {
		t.Fatal("expected password hash to be replaced")
	}
	match, err := security.VerifyPassword(newPass, *userRepo.passwordHash)
	if err != nil || !match {
		t.Fatalf("new hash does not verify: match=%v err=%v", match, err)
	}
}
