package usecase

import (
	"context"

	authDomain "github.com/allisson/meetings/internal/auth/domain"
	authService "github.com/allisson/meetings/internal/auth/service"
	"github.com/allisson/meetings/internal/identity"
)

// tokenUseCase implements TokenUseCase.
type tokenUseCase struct {
	users        UserService
	tokenService authService.TokenService
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(users UserService, tokenService authService.TokenService) TokenUseCase {
	return &tokenUseCase{
		users:        users,
		tokenService: tokenService,
	}
}

// Login authenticates the user and issues a signed token.
func (t *tokenUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	user, err := t.users.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	id := identity.Identity{UserID: user.ID, Username: user.Username}

	issued, err := t.tokenService.Issue(id)
	if err != nil {
		return nil, err
	}

	return &authDomain.LoginOutput{
		Token:     issued.Token,
		TokenType: authDomain.TokenType,
		ExpiresAt: issued.ExpiresAt,
		Identity:  id,
	}, nil
}

// Authenticate resolves token to the identity of a current account.
func (t *tokenUseCase) Authenticate(ctx context.Context, token string) (identity.Identity, error) {
	username, err := t.tokenService.ExtractUsername(token)
	if err != nil {
		return identity.Identity{}, err
	}

	user, err := t.users.GetByUsername(ctx, username)
	if err != nil {
		return identity.Identity{}, err
	}

	id, err := t.tokenService.Validate(token, user.Username)
	if err != nil {
		return identity.Identity{}, err
	}

	// A recreated account with the same username must not inherit old tokens.
	if id.UserID != user.ID {
		return identity.Identity{}, authDomain.ErrSubjectMismatch
	}

	return id, nil
}
