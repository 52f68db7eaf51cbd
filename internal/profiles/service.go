package profiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	pkgerrors "github.com/fitnesspro/fitnesspro-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var allowedAvatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Service defines the behavior needed by the profile controller.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, filename, contentType string, body io.Reader) (string, error)
}

type profileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) error
	UpdateAvatarURL(ctx context.Context, userID uuid.UUID, url string) error
}

type avatarBucket interface {
	Upload(ctx context.Context, objectName, contentType string, body io.Reader) error
	PublicURL(objectName string) string
}

type service struct {
	profiles profileRepository
	avatars  avatarBucket
}

// ServiceParams bundles the dependencies required to build a profile service.
type ServiceParams struct {
	ProfileRepo  profileRepository
	AvatarBucket avatarBucket
}

// NewService constructs a profile service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ProfileRepo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	if params.AvatarBucket == nil {
		return nil, fmt.Errorf("avatar bucket is required")
	}
	return &service{
		profiles: params.ProfileRepo,
		avatars:  params.AvatarBucket,
	}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
	}
	return FromModel(profile), nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error) {
	if input.FirstName != nil && strings.TrimSpace(*input.FirstName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first_name cannot be empty")
	}
	if input.LastName != nil && strings.TrimSpace(*input.LastName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "last_name cannot be empty")
	}

	if err := s.profiles.Update(ctx, userID, input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}
	return s.Get(ctx, userID)
}

// UploadAvatar stores the image under {userID}/avatar{ext}, replacing any
// previous avatar, and persists the resulting public URL on the profile.
func (s *service) UploadAvatar(ctx context.Context, userID uuid.UUID, filename, contentType string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedAvatarExtensions[ext] {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported avatar file type").
			WithDetails(map[string]any{"extension": ext})
	}

	if _, err := s.profiles.FindByUserID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup profile")
	}

	objectName := fmt.Sprintf("%s/avatar%s", userID, ext)
	if err := s.avatars.Upload(ctx, objectName, contentType, body); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload avatar")
	}

	url := s.avatars.PublicURL(objectName)
	if err := s.profiles.UpdateAvatarURL(ctx, userID, url); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist avatar url")
	}
	return url, nil
}
