package app

import (
	"fmt"

	authHTTP "github.com/allisson/meetings/internal/auth/http"
	authService "github.com/allisson/meetings/internal/auth/service"
	authUseCase "github.com/allisson/meetings/internal/auth/usecase"
	"github.com/allisson/meetings/internal/ratelimit"
)

// loginLimiterPrefix namespaces login counters in a shared Redis.
const loginLimiterPrefix = "meetings:login"

// TokenService returns the JWT token service.
func (c *Container) TokenService() (authService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = c.initTokenService()
		if err != nil {
			c.initErrors["tokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// TokenUseCase returns the login and authentication use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// LoginHandler returns the HTTP handler for the login endpoint.
func (c *Container) LoginHandler() (*authHTTP.LoginHandler, error) {
	var err error
	c.loginHandlerInit.Do(func() {
		c.loginHandler, err = c.initLoginHandler()
		if err != nil {
			c.initErrors["loginHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["loginHandler"]; exists {
		return nil, storedErr
	}
	return c.loginHandler, nil
}

// LoginRateLimiter returns the per-IP limiter for the login endpoint, or nil
// when login rate limiting is disabled.
func (c *Container) LoginRateLimiter() (ratelimit.Limiter, error) {
	var err error
	c.loginLimiterInit.Do(func() {
		c.loginLimiter, err = c.initLoginRateLimiter()
		if err != nil {
			c.initErrors["loginLimiter"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["loginLimiter"]; exists {
		return nil, storedErr
	}
	return c.loginLimiter, nil
}

// UserRateLimiter returns the per-user limiter for meeting endpoints, or nil
// when rate limiting is disabled.
func (c *Container) UserRateLimiter() ratelimit.Limiter {
	c.userLimiterInit.Do(func() {
		if c.config.RateLimitEnabled {
			c.userLimiter = ratelimit.NewMemoryLimiter(c.config.RateLimitRequestsPerSec, c.config.RateLimitBurst)
		}
	})
	return c.userLimiter
}

// initTokenService creates the HS256 token service from configuration.
func (c *Container) initTokenService() (authService.TokenService, error) {
	tokenService, err := authService.NewTokenService(authService.TokenConfig{
		Secret: []byte(c.config.JWTSecret),
		Issuer: c.config.JWTIssuer,
		TTL:    c.config.AuthTokenExpiration,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	return tokenService, nil
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for token use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for token use case: %w", err)
	}

	baseUseCase := authUseCase.NewTokenUseCase(userUseCase, tokenService)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return authUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initLoginHandler creates the login HTTP handler.
func (c *Container) initLoginHandler() (*authHTTP.LoginHandler, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for login handler: %w", err)
	}
	return authHTTP.NewLoginHandler(tokenUseCase, c.Logger()), nil
}

// initLoginRateLimiter uses a Redis fixed window when REDIS_URL is set so that
// every instance shares the same counters, and a local token bucket otherwise.
func (c *Container) initLoginRateLimiter() (ratelimit.Limiter, error) {
	if !c.config.RateLimitLoginEnabled {
		return nil, nil
	}

	client, err := c.RedisClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get redis client for login rate limiter: %w", err)
	}
	if client != nil {
		return ratelimit.NewRedisLimiter(
			client,
			loginLimiterPrefix,
			c.config.RateLimitLoginBurst,
			c.config.RateLimitLoginWindow,
		), nil
	}

	return ratelimit.NewMemoryLimiter(c.config.RateLimitLoginRequestsPerSec, c.config.RateLimitLoginBurst), nil
}
