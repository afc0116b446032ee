package commands

import (
	"context"
	"time"

	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"
)

// CancelRequestCommandHandler handles withdrawal of a request by the owning
// patient or the pharmacy it was sent to. Terminal requests cannot be
// withdrawn.
type CancelRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	notifier   ports.Notifier
}

// NewCancelRequestCommandHandler creates a handler for request withdrawal.
func NewCancelRequestCommandHandler(uowFactory RequestUoWFactory, notifier ports.Notifier) CancelRequestCommandHandler {
	return CancelRequestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the withdrawal command.
func (h *CancelRequestCommandHandler) Handle(ctx context.Context, cmd CancelRequestCommand) error {
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

	if !aggregate.IsOwnedBy(cmd.CallerID()) && !aggregate.BelongsToPharmacy(cmd.CallerID()) {
		return errs.NewForbiddenError(cmd.CallerID().String(), "request", aggregate.ID().String())
	}

	if err := aggregate.Cancel(time.Now().UTC()); err != nil {
		return err
	}

	if err := repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.RequestCancelled(ctx, aggregate)
	return nil
}
