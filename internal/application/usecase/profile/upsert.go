package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/devlinkhq/devlink/adapters/event"
	"github.com/devlinkhq/devlink/internal/domain/profile"
	"github.com/devlinkhq/devlink/pkg/apperror"
)

// UpsertProfileInput enumerates the recognized profile fields. Status and
// Skills are validated as present at the HTTP boundary; nil optional fields
// are left untouched on update and omitted on create.
type UpsertProfileInput struct {
	OwnerID uuid.UUID
	Status  string
	Skills  string

	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	GithubUsername *string

	Youtube   *string
	Twitter   *string
	Facebook  *string
	Linkedin  *string
	Instagram *string
}

// Upsert creates the owner's profile on first call and partially merges the
// supplied fields on every call after. The create path races with itself
// across concurrent requests; a lost insert falls through to the update path
// on retry, so at most one profile ever exists per owner.
func (uc *ProfileUseCase) Upsert(ctx context.Context, input UpsertProfileInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "Upsert")
	defer span.End()

	var lastErr error
	for attempt := 0; attempt < maxMutateRetries; attempt++ {
		now := time.Now().UTC()

		existing, err := uc.repo.GetByOwner(ctx, input.OwnerID)
		switch {
		case err == nil:
			applyUpsert(existing, input)
			existing.UpdatedAt = now
			err = uc.repo.Update(ctx, existing)
			if err == nil {
				uc.publishEvent(ctx, event.EventProfileUpdated, input.OwnerID)
				return existing, nil
			}

		case errors.Is(err, profile.ErrProfileNotFound):
			p := &profile.Profile{OwnerID: input.OwnerID, CreatedAt: now, UpdatedAt: now}
			applyUpsert(p, input)
			err = uc.repo.Create(ctx, p)
			if err == nil {
				uc.publishEvent(ctx, event.EventProfileUpdated, input.OwnerID)
				return p, nil
			}

		default:
			return nil, err
		}

		if !errors.Is(err, profile.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, apperror.NewAppError(apperror.ErrConflict,
		"profile is being modified concurrently", "optimistic retries exhausted", lastErr)
}

func applyUpsert(p *profile.Profile, input UpsertProfileInput) {
	p.Status = input.Status
	p.Skills = profile.ParseSkills(input.Skills)

	setIfPresent(&p.Company, input.Company)
	setIfPresent(&p.Website, input.Website)
	setIfPresent(&p.Location, input.Location)
	setIfPresent(&p.Bio, input.Bio)
	setIfPresent(&p.GithubUsername, input.GithubUsername)

	setIfPresent(&p.Social.Youtube, input.Youtube)
	setIfPresent(&p.Social.Twitter, input.Twitter)
	setIfPresent(&p.Social.Facebook, input.Facebook)
	setIfPresent(&p.Social.Linkedin, input.Linkedin)
	setIfPresent(&p.Social.Instagram, input.Instagram)
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
