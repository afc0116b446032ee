package commands

import (
	"context"

	"pharmacy/internal/pkg/errs"
)

// UpdateRequestCommandHandler handles patient edits of pending requests.
// Only the owning patient may edit, and only while the request is pending.
type UpdateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewUpdateRequestCommandHandler creates a handler for request edit operations.
func NewUpdateRequestCommandHandler(uowFactory RequestUoWFactory) UpdateRequestCommandHandler {
	return UpdateRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the request edit command.
// Rejects callers other than the owning patient with a forbidden error.
func (h *UpdateRequestCommandHandler) Handle(ctx context.Context, cmd UpdateRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RequestRepository()
	aggregate, err := repo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if !aggregate.IsOwnedBy(cmd.CallerID()) {
		return errs.NewForbiddenError(cmd.CallerID().String(), "request", aggregate.ID().String())
	}

	if err := aggregate.UpdateDetails(cmd.Quantity(), cmd.Urgency(), cmd.Notes(), cmd.PrescriptionImage()); err != nil {
		return err
	}

	if err := repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
