package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/meetings/internal/auth/domain"
	apperrors "github.com/allisson/meetings/internal/errors"
	"github.com/allisson/meetings/internal/identity"
)

// Claims are the JWT claims carried by an access token. The username is the
// registered sub claim.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"userId"`
}

// TokenConfig configures a token service.
type TokenConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Option customizes a token service.
type Option func(*jwtTokenService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *jwtTokenService) {
		s.now = now
	}
}

// jwtTokenService implements TokenService with HS256 JWTs.
type jwtTokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenService creates an HS256 TokenService.
func NewTokenService(cfg TokenConfig, opts ...Option) (TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	s := &jwtTokenService{
		secret: cfg.Secret,
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
		// Expiry is checked by hand against the injected clock, after the
		// signature, so claims validation is disabled here.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
			jwt.WithStrictDecoding(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a token for id.
func (s *jwtTokenService) Issue(id identity.Identity) (*authDomain.IssuedToken, error) {
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: id.UserID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign token")
	}

	return &authDomain.IssuedToken{
		Token:     signed,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate verifies the signature, then expiry, then subject.
func (s *jwtTokenService) Validate(token, expectedUsername string) (identity.Identity, error) {
	claims := &Claims{}

	parsed, err := s.parser.ParseWithClaims(token, claims, s.keyFunc)
	if err != nil || !parsed.Valid {
		return identity.Identity{}, authDomain.ErrInvalidSignature
	}

	if claims.ExpiresAt == nil || s.now().After(claims.ExpiresAt.Time) {
		return identity.Identity{}, authDomain.ErrTokenExpired
	}

	if claims.Subject != expectedUsername {
		return identity.Identity{}, authDomain.ErrSubjectMismatch
	}

	return identity.Identity{UserID: claims.UserID, Username: claims.Subject}, nil
}

// ExtractUsername returns the unverified subject of token.
func (s *jwtTokenService) ExtractUsername(token string) (string, error) {
	claims := &Claims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		return "", authDomain.ErrMalformedToken
	}
	if claims.Subject == "" {
		return "", authDomain.ErrMalformedToken
	}
	return claims.Subject, nil
}

func (s *jwtTokenService) keyFunc(*jwt.Token) (any, error) {
	return s.secret, nil
}
