package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/devlinkhq/devlink/internal/domain/profile"
)

type EducationInput struct {
	OwnerID      uuid.UUID
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

func (uc *ProfileUseCase) AddEducation(ctx context.Context, input EducationInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "AddEducation")
	defer span.End()

	return uc.mutate(ctx, input.OwnerID, func(p *profile.Profile) error {
		p.PutEducation(profile.Education{
			School:       input.School,
			Degree:       input.Degree,
			FieldOfStudy: input.FieldOfStudy,
			From:         input.From,
			To:           input.To,
			Current:      input.Current,
			Description:  input.Description,
		})
		return nil
	})
}

func (uc *ProfileUseCase) RemoveEducation(ctx context.Context, ownerID, entryID uuid.UUID) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "RemoveEducation")
	defer span.End()

	return uc.mutate(ctx, ownerID, func(p *profile.Profile) error {
		return p.RemoveEducation(entryID)
	})
}
