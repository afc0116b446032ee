package commands

import (
	"context"
	"time"

	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"
)

// ChangeRequestStatusCommandHandler handles pharmacy responses to requests.
// Only the pharmacy the request was sent to may respond. The patient is
// notified after the transition is committed.
type ChangeRequestStatusCommandHandler struct {
	uowFactory RequestUoWFactory
	notifier   ports.Notifier
}

// NewChangeRequestStatusCommandHandler creates a handler for request status
// transitions.
func NewChangeRequestStatusCommandHandler(
	uowFactory RequestUoWFactory,
	notifier ports.Notifier,
) ChangeRequestStatusCommandHandler {
	return ChangeRequestStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the status change command.
// Ownership is checked before the transition table, so a foreign pharmacy
// gets a forbidden error even for transitions that would also be invalid.
func (h *ChangeRequestStatusCommandHandler) Handle(ctx context.Context, cmd ChangeRequestStatusCommand) error {
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

	if !aggregate.BelongsToPharmacy(cmd.CallerID()) {
		return errs.NewForbiddenError(cmd.CallerID().String(), "request", aggregate.ID().String())
	}

	if err := aggregate.ChangeStatus(
		cmd.NewStatus(),
		cmd.Notes(),
		cmd.ResponseDate(),
		cmd.EstimatedAvailability(),
		time.Now().UTC(),
	); err != nil {
		return err
	}

	if err := repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.RequestStatusChanged(ctx, aggregate)
	return nil
}
