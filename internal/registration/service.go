package registration

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/fitnesspro/fitnesspro-backend/internal/clients"
	"github.com/fitnesspro/fitnesspro-backend/internal/profiles"
	"github.com/fitnesspro/fitnesspro-backend/internal/roles"
	"github.com/fitnesspro/fitnesspro-backend/internal/staff"
	"github.com/fitnesspro/fitnesspro-backend/internal/users"
	"github.com/fitnesspro/fitnesspro-backend/pkg/config"
	"github.com/fitnesspro/fitnesspro-backend/pkg/db"
	"github.com/fitnesspro/fitnesspro-backend/pkg/db/models"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	pkgerrors "github.com/fitnesspro/fitnesspro-backend/pkg/errors"
	"github.com/fitnesspro/fitnesspro-backend/pkg/security"
	"gorm.io/gorm"
)

const (
	minPasswordLength  = 6
	tempPasswordLength = 12
)

// Service wires the multi-step signup flows. Every step of a registration
// runs inside one transaction so a failure leaves nothing behind.
type Service interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*UserRegistrationDTO, error)
	RegisterClient(ctx context.Context, input RegisterClientInput) (*ClientRegistrationDTO, error)
	RegisterStaff(ctx context.Context, input RegisterStaffInput) (*StaffRegistrationDTO, error)
}

type service struct {
	db       *db.Client
	password config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build a registration service.
type ServiceParams struct {
	DB       *db.Client
	Password config.PasswordConfig
}

// NewService constructs a registration service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &service{db: params.DB, password: params.Password}, nil
}

// RegisterUser provisions a bare account with the generic user role: no
// client or staff record, just identity, profile and role grant.
func (s *service) RegisterUser(ctx context.Context, input RegisterUserInput) (*UserRegistrationDTO, error) {
	email, err := validateIdentity(input.Email, input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var result UserRegistrationDTO
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		user, profile, err := s.createIdentity(ctx, tx, identitySeed{
			Email:        email,
			PasswordHash: hash,
			FirstName:    strings.TrimSpace(input.FirstName),
			LastName:     strings.TrimSpace(input.LastName),
			Phone:        input.Phone,
			DateOfBirth:  input.DateOfBirth,
			Role:         enums.AppRoleUser,
		})
		if err != nil {
			return err
		}
		result = UserRegistrationDTO{
			User:    users.FromModel(user),
			Profile: profiles.FromModel(profile),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) RegisterClient(ctx context.Context, input RegisterClientInput) (*ClientRegistrationDTO, error) {
	email, err := validateIdentity(input.Email, input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if input.Plan != nil && !input.Plan.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid client plan")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid client status")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var result ClientRegistrationDTO
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		user, profile, err := s.createIdentity(ctx, tx, identitySeed{
			Email:        email,
			PasswordHash: hash,
			FirstName:    strings.TrimSpace(input.FirstName),
			LastName:     strings.TrimSpace(input.LastName),
			Phone:        input.Phone,
			DateOfBirth:  input.DateOfBirth,
			Role:         enums.AppRoleClient,
		})
		if err != nil {
			return err
		}

		clientRepo := clients.NewRepository(tx)
		record, err := clientRepo.FindByEmail(ctx, email)
		switch {
		case err == nil:
			// A record added by the front desk before the client ever signed
			// up: link it to the new account instead of duplicating it.
			if record.UserID != nil {
				return pkgerrors.New(pkgerrors.CodeConflict, "client record already has an account")
			}
			if err := clientRepo.AttachUser(ctx, record.ID, user.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "attach client account")
			}
			record.UserID = &user.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			dto := clients.CreateClientDTO{
				FirstName: strings.TrimSpace(input.FirstName),
				LastName:  strings.TrimSpace(input.LastName),
				Email:     email,
				Phone:     input.Phone,
				Notes:     input.Notes,
				UserID:    &user.ID,
			}
			if input.Plan != nil {
				dto.Plan = *input.Plan
			}
			if input.Status != nil {
				dto.Status = *input.Status
			}
			record, err = clientRepo.Create(ctx, dto)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create client record")
			}
		default:
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check client record")
		}

		result = ClientRegistrationDTO{
			User:    users.FromModel(user),
			Profile: profiles.FromModel(profile),
			Client:  clients.FromModel(record),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) RegisterStaff(ctx context.Context, input RegisterStaffInput) (*StaffRegistrationDTO, error) {
	email, err := validateIdentity(input.Email, input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Position) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "position is required")
	}
	if !input.Department.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid department")
	}
	if input.Salary != nil && input.Salary.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "salary cannot be negative")
	}

	password := input.Password
	var tempPassword *string
	if password == "" {
		generated, err := security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
		}
		password = generated
		tempPassword = &generated
	} else if len(password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := security.HashPassword(password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	hireDate := time.Now().UTC().Truncate(24 * time.Hour)
	if input.HireDate != nil {
		hireDate = *input.HireDate
	}

	var result StaffRegistrationDTO
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		user, profile, err := s.createIdentity(ctx, tx, identitySeed{
			Email:        email,
			PasswordHash: hash,
			FirstName:    strings.TrimSpace(input.FirstName),
			LastName:     strings.TrimSpace(input.LastName),
			Phone:        input.Phone,
			Role:         enums.AppRoleAdmin,
		})
		if err != nil {
			return err
		}

		staffRepo := staff.NewRepository(tx)
		employeeID, err := staffRepo.NextEmployeeID(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "allocate employee id")
		}

		row, err := staffRepo.Create(ctx, staff.CreateStaffDTO{
			EmployeeID: employeeID,
			UserID:     user.ID,
			Position:   strings.TrimSpace(input.Position),
			Department: input.Department,
			HireDate:   hireDate,
			Salary:     input.Salary,
			Notes:      input.Notes,
			ManagerID:  input.ManagerID,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create staff record")
		}

		result = StaffRegistrationDTO{
			User:    users.FromModel(user),
			Profile: profiles.FromModel(profile),
			Staff: staff.FromJoined(&staff.StaffWithProfile{
				Staff:     *row,
				FirstName: profile.FirstName,
				LastName:  profile.LastName,
				Phone:     profile.Phone,
			}),
			TempPassword: tempPassword,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type identitySeed struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	DateOfBirth  *time.Time
	Role         enums.AppRole
}

// createIdentity performs the shared steps of every signup: account, profile,
// and role grant, all on the caller's transaction.
func (s *service) createIdentity(ctx context.Context, tx *gorm.DB, seed identitySeed) (*models.User, *models.Profile, error) {
	userRepo := users.NewRepository(tx)

	if _, err := userRepo.FindByEmail(ctx, seed.Email); err == nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
	}

	user, err := userRepo.Create(ctx, users.CreateUserDTO{
		Email:        seed.Email,
		PasswordHash: seed.PasswordHash,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	profile, err := profiles.NewRepository(tx).Create(ctx, profiles.CreateProfileDTO{
		UserID:      user.ID,
		FirstName:   seed.FirstName,
		LastName:    seed.LastName,
		Phone:       seed.Phone,
		DateOfBirth: seed.DateOfBirth,
	})
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create profile")
	}

	if err := roles.NewRepository(tx).Grant(ctx, user.ID, seed.Role); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "grant role")
	}

	return user, profile, nil
}

func validateIdentity(email, firstName, lastName string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid email address")
	}
	if strings.TrimSpace(firstName) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "first_name is required")
	}
	if strings.TrimSpace(lastName) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "last_name is required")
	}
	return normalized, nil
}
