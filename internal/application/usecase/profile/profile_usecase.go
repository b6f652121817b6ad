package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/devlinkhq/devlink/adapters/event"
	"github.com/devlinkhq/devlink/internal/domain/profile"
	"github.com/devlinkhq/devlink/pkg/apperror"
	"github.com/devlinkhq/devlink/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

// maxMutateRetries bounds the reload-and-retry loop around optimistic
// version conflicts.
const maxMutateRetries = 3

// ListCache is a read-through cache for the public profile list.
type ListCache interface {
	Get(ctx context.Context) ([]*profile.Profile, bool)
	Set(ctx context.Context, profiles []*profile.Profile)
}

type ProfileUseCase struct {
	repo   profile.Repository
	cache  ListCache
	events event.Publisher
	logger logger.Logger
}

func NewProfileUseCase(repo profile.Repository, cache ListCache, events event.Publisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		repo:   repo,
		cache:  cache,
		events: events,
		logger: log,
	}
}

// GetByOwner returns the profile for ownerID with display fields resolved,
// or profile.ErrProfileNotFound.
func (uc *ProfileUseCase) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "GetByOwner")
	defer span.End()

	return uc.repo.GetByOwner(ctx, ownerID)
}

// List returns every profile, serving from the cache when warm.
func (uc *ProfileUseCase) List(ctx context.Context) ([]*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "List")
	defer span.End()

	if cached, ok := uc.cache.Get(ctx); ok {
		return cached, nil
	}

	profiles, err := uc.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	uc.cache.Set(ctx, profiles)
	return profiles, nil
}

// mutate runs a load-apply-persist cycle under optimistic concurrency:
// version conflicts reload the profile and retry, so two concurrent sub-list
// mutations for the same owner both land instead of the second clobbering
// the first.
func (uc *ProfileUseCase) mutate(ctx context.Context, ownerID uuid.UUID, apply func(p *profile.Profile) error) (*profile.Profile, error) {
	var lastErr error
	for attempt := 0; attempt < maxMutateRetries; attempt++ {
		p, err := uc.repo.GetByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}

		if err := apply(p); err != nil {
			return nil, err
		}
		p.UpdatedAt = time.Now().UTC()

		err = uc.repo.Update(ctx, p)
		if err == nil {
			uc.publishEvent(ctx, event.EventProfileUpdated, ownerID)
			return p, nil
		}
		if !errors.Is(err, profile.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, apperror.NewAppError(apperror.ErrConflict,
		"profile is being modified concurrently", "optimistic retries exhausted", lastErr)
}

// publishEvent is best-effort; a broker outage never fails the request.
func (uc *ProfileUseCase) publishEvent(ctx context.Context, eventType string, ownerID uuid.UUID) {
	payload := event.ProfileEventPayload{
		EventType:  eventType,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.events.PublishProfileEvent(ctx, payload); err != nil {
		uc.logger.Warn("Failed to publish profile event",
			zap.String("event_type", eventType),
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
	}
}
