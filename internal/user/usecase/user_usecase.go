package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/meetings/internal/errors"
	"github.com/allisson/meetings/internal/identity"
	"github.com/allisson/meetings/internal/user/domain"
	userService "github.com/allisson/meetings/internal/user/service"
	appValidation "github.com/allisson/meetings/internal/validation"
)

// timingPassword is hashed once; logins naming an unknown user verify against it.
const timingPassword = "meetings-unknown-user-placeholder"

// userUseCase handles user-related business logic.
type userUseCase struct {
	userRepo       UserRepository
	passwordHasher userService.PasswordHasher

	dummyHashOnce sync.Once
	dummyHash     string
}

// NewUserUseCase creates a new user UseCase.
func NewUserUseCase(userRepo UserRepository, passwordHasher userService.PasswordHasher) UseCase {
	return &userUseCase{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
	}
}

func validateRegisterUserInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.Username,
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			appValidation.DefaultPasswordStrength,
		),
		validation.Field(&input.Timezone, appValidation.Timezone),
	)
	return appValidation.WrapValidationError(err)
}

// Register validates the input, hashes the password and stores the user.
func (uc *userUseCase) Register(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Timezone = strings.TrimSpace(input.Timezone)

	if err := validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = domain.DefaultTimezone
	}

	user := &domain.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashedPassword,
		Timezone: timezone,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByUsername retrieves a user by username.
func (uc *userUseCase) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return uc.userRepo.GetByUsername(ctx, username)
}

// Authenticate verifies a password against the stored hash.
func (uc *userUseCase) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.verifyDummy(password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := uc.passwordHasher.Verify(password, user.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// verifyDummy runs a password verification whose result is discarded.
func (uc *userUseCase) verifyDummy(password string) {
	uc.dummyHashOnce.Do(func() {
		if hashed, err := uc.passwordHasher.Hash(timingPassword); err == nil {
			uc.dummyHash = hashed
		}
	})
	if uc.dummyHash == "" {
		return
	}
	_, _ = uc.passwordHasher.Verify(password, uc.dummyHash)
}

// UpdateTimezone stores a new IANA time zone for the calling user.
func (uc *userUseCase) UpdateTimezone(ctx context.Context, timezone string) (*domain.User, error) {
	caller, err := identity.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	timezone = strings.TrimSpace(timezone)
	err = validation.Validate(timezone,
		validation.Required.Error("timezone is required"),
		appValidation.Timezone,
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "timezone: "+err.Error())
	}

	if err := uc.userRepo.UpdateTimezone(ctx, caller.UserID, timezone); err != nil {
		return nil, err
	}

	return uc.userRepo.GetByID(ctx, caller.UserID)
}
