package app

import (
	"fmt"

	meetingHTTP "github.com/allisson/meetings/internal/meeting/http"
	meetingRepository "github.com/allisson/meetings/internal/meeting/repository"
	meetingService "github.com/allisson/meetings/internal/meeting/service"
	meetingUseCase "github.com/allisson/meetings/internal/meeting/usecase"
)

// IDGenerator returns the meeting identifier generator.
func (c *Container) IDGenerator() meetingService.IDGenerator {
	c.idGeneratorInit.Do(func() {
		c.idGenerator = meetingService.NewIDGenerator()
	})
	return c.idGenerator
}

// MeetingRepository returns the meeting repository based on database driver.
func (c *Container) MeetingRepository() (meetingUseCase.MeetingRepository, error) {
	var err error
	c.meetingRepoInit.Do(func() {
		c.meetingRepo, err = c.initMeetingRepository()
		if err != nil {
			c.initErrors["meetingRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["meetingRepo"]; exists {
		return nil, storedErr
	}
	return c.meetingRepo, nil
}

// MeetingUseCase returns the meeting use case.
func (c *Container) MeetingUseCase() (meetingUseCase.UseCase, error) {
	var err error
	c.meetingUseCaseInit.Do(func() {
		c.meetingUseCase, err = c.initMeetingUseCase()
		if err != nil {
			c.initErrors["meetingUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["meetingUseCase"]; exists {
		return nil, storedErr
	}
	return c.meetingUseCase, nil
}

// MeetingHandler returns the HTTP handler for meeting operations.
func (c *Container) MeetingHandler() (*meetingHTTP.MeetingHandler, error) {
	var err error
	c.meetingHandlerInit.Do(func() {
		c.meetingHandler, err = c.initMeetingHandler()
		if err != nil {
			c.initErrors["meetingHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["meetingHandler"]; exists {
		return nil, storedErr
	}
	return c.meetingHandler, nil
}

// initMeetingRepository creates the meeting repository based on the database driver.
func (c *Container) initMeetingRepository() (meetingUseCase.MeetingRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for meeting repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return meetingRepository.NewPostgreSQLMeetingRepository(db), nil
	case "mysql":
		return meetingRepository.NewMySQLMeetingRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMeetingUseCase creates the meeting use case with all its dependencies.
func (c *Container) initMeetingUseCase() (meetingUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for meeting use case: %w", err)
	}

	meetingRepo, err := c.MeetingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting repository for meeting use case: %w", err)
	}

	baseUseCase := meetingUseCase.NewMeetingUseCase(
		txManager,
		meetingRepo,
		c.IDGenerator(),
		c.config.MeetingIDMaxAttempts,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for meeting use case: %w", err)
		}
		return meetingUseCase.NewMeetingUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initMeetingHandler creates the meeting HTTP handler.
func (c *Container) initMeetingHandler() (*meetingHTTP.MeetingHandler, error) {
	useCase, err := c.MeetingUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting use case for meeting handler: %w", err)
	}
	return meetingHTTP.NewMeetingHandler(useCase, c.Logger()), nil
}
