package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/meetings/internal/database"
	"github.com/allisson/meetings/internal/identity"
	"github.com/allisson/meetings/internal/meeting/domain"
	meetingService "github.com/allisson/meetings/internal/meeting/service"
	appValidation "github.com/allisson/meetings/internal/validation"
)

// Option configures the meeting use case.
type Option func(*meetingUseCase)

// WithClock replaces the clock used for creation and join timestamps.
func WithClock(now func() time.Time) Option {
	return func(uc *meetingUseCase) {
		uc.now = now
	}
}

type meetingUseCase struct {
	txManager   database.TxManager
	meetingRepo MeetingRepository
	idGenerator meetingService.IDGenerator
	maxAttempts int
	now         func() time.Time
}

// NewMeetingUseCase creates a meeting UseCase. maxAttempts bounds how many ids
// Create tries before giving up; values below one are treated as one.
func NewMeetingUseCase(
	txManager database.TxManager,
	meetingRepo MeetingRepository,
	idGenerator meetingService.IDGenerator,
	maxAttempts int,
	opts ...Option,
) UseCase {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	uc := &meetingUseCase{
		txManager:   txManager,
		meetingRepo: meetingRepo,
		idGenerator: idGenerator,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func validateCreateMeetingInput(input domain.CreateMeetingInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.RuneLength(1, 255),
		),
		validation.Field(&input.Description, validation.RuneLength(0, 2000)),
		validation.Field(&input.EndTime, validation.By(func(any) error {
			if input.StartTime != nil && input.EndTime != nil && input.EndTime.Before(*input.StartTime) {
				return validation.NewError("validation_end_time", "must not be before startTime")
			}
			return nil
		})),
	)
	return appValidation.WrapValidationError(err)
}

// timestamp returns the current time at the precision both databases store.
func (uc *meetingUseCase) timestamp() time.Time {
	return uc.now().UTC().Truncate(time.Microsecond)
}

// Create stores a new meeting in status "ready" owned by the caller.
func (uc *meetingUseCase) Create(ctx context.Context, input *domain.CreateMeetingInput) (*domain.Meeting, error) {
	caller, err := identity.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	in := *input
	in.Title = strings.TrimSpace(in.Title)
	if err := validateCreateMeetingInput(in); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < uc.maxAttempts; attempt++ {
		createdAt := uc.timestamp()
		meeting := &domain.Meeting{
			ID:          uc.idGenerator.Generate(),
			Title:       in.Title,
			Description: in.Description,
			CreatorID:   caller.UserID,
			Status:      domain.StatusReady,
			CreatedAt:   createdAt,
			StartTime:   utcPtr(in.StartTime),
			EndTime:     utcPtr(in.EndTime),
		}

		err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
			if err := uc.meetingRepo.Create(ctx, meeting); err != nil {
				return err
			}
			return uc.meetingRepo.AddParticipant(ctx, &domain.Participant{
				MeetingID: meeting.ID,
				UserID:    caller.UserID,
				JoinedAt:  createdAt,
			})
		})
		if err == nil {
			return meeting, nil
		}
		if !errors.Is(err, domain.ErrMeetingAlreadyExists) {
			return nil, err
		}
	}

	return nil, domain.ErrMeetingIDExhausted
}

// Get returns a meeting by id.
func (uc *meetingUseCase) Get(ctx context.Context, id string) (*domain.Meeting, error) {
	if _, err := requireCallerAndID(ctx, id); err != nil {
		return nil, err
	}
	return uc.meetingRepo.GetByID(ctx, id)
}

// Join adds the caller to the participants of a meeting.
func (uc *meetingUseCase) Join(ctx context.Context, id string) (*domain.Participant, error) {
	caller, err := requireCallerAndID(ctx, id)
	if err != nil {
		return nil, err
	}

	participant := &domain.Participant{
		MeetingID: id,
		UserID:    caller.UserID,
		JoinedAt:  uc.timestamp(),
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := uc.meetingRepo.GetByID(ctx, id); err != nil {
			return err
		}
		return uc.meetingRepo.AddParticipant(ctx, participant)
	})
	if err != nil {
		return nil, err
	}
	return participant, nil
}

// Delete removes a meeting and, through the foreign key, its participants.
func (uc *meetingUseCase) Delete(ctx context.Context, id string) error {
	if _, err := requireCallerAndID(ctx, id); err != nil {
		return err
	}
	return uc.meetingRepo.Delete(ctx, id)
}

// ListForCurrentUser returns the meetings the caller participates in.
func (uc *meetingUseCase) ListForCurrentUser(ctx context.Context, offset, limit int) ([]*domain.Meeting, error) {
	caller, err := identity.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return uc.meetingRepo.ListByParticipant(ctx, caller.UserID, offset, limit)
}

// requireCallerAndID checks the caller first so anonymous requests never learn
// anything about the id they sent.
func requireCallerAndID(ctx context.Context, id string) (identity.Identity, error) {
	caller, err := identity.RequireIdentity(ctx)
	if err != nil {
		return identity.Identity{}, err
	}
	if !meetingService.ValidMeetingID(id) {
		return identity.Identity{}, domain.ErrInvalidMeetingID
	}
	return caller, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Microsecond)
	return &v
}
