package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/devlinkhq/devlink/adapters/event"
)

// DeleteAccount removes the owner's posts, profile and user account as a
// single transaction; a failed step rolls the whole cascade back and is
// surfaced as a storage fault.
func (uc *ProfileUseCase) DeleteAccount(ctx context.Context, ownerID uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "DeleteAccount")
	defer span.End()

	if err := uc.repo.DeleteCascade(ctx, ownerID); err != nil {
		span.RecordError(err)
		return err
	}

	uc.publishEvent(ctx, event.EventProfileDeleted, ownerID)
	return nil
}
