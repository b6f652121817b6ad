package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/devlinkhq/devlink/internal/domain/profile"
)

type ExperienceInput struct {
	OwnerID     uuid.UUID
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// AddExperience reconciles the submitted entry into the owner's experience
// list and returns the full updated profile.
func (uc *ProfileUseCase) AddExperience(ctx context.Context, input ExperienceInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "AddExperience")
	defer span.End()

	return uc.mutate(ctx, input.OwnerID, func(p *profile.Profile) error {
		p.PutExperience(profile.Experience{
			Title:       input.Title,
			Company:     input.Company,
			Location:    input.Location,
			From:        input.From,
			To:          input.To,
			Current:     input.Current,
			Description: input.Description,
		})
		return nil
	})
}

// RemoveExperience deletes the entry addressed by entryID, returning
// profile.ErrEntryNotFound when no entry carries that id.
func (uc *ProfileUseCase) RemoveExperience(ctx context.Context, ownerID, entryID uuid.UUID) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "RemoveExperience")
	defer span.End()

	return uc.mutate(ctx, ownerID, func(p *profile.Profile) error {
		return p.RemoveExperience(entryID)
	})
}
