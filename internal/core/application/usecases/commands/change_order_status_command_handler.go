package commands

import (
	"context"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler handles delivery pipeline transitions.
// The fulfilling pharmacy or the assigned delivery partner may move the
// order; anyone else gets a forbidden error. The patient is notified after
// the transition is committed.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewChangeOrderStatusCommandHandler creates a handler for order status
// transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the status change command.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !canMoveOrder(aggregate, cmd.CallerID()) {
		return errs.NewForbiddenError(cmd.CallerID().String(), "order", aggregate.ID().String())
	}

	if err := aggregate.ChangeStatus(cmd.NewStatus(), time.Now().UTC(), cmd.Location(), cmd.Notes()); err != nil {
		return err
	}

	if err := repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.OrderStatusChanged(ctx, aggregate)
	return nil
}

// canMoveOrder permits the fulfilling pharmacy and the assigned delivery
// partner to advance the order.
func canMoveOrder(aggregate *order.Order, callerID kernel.UUID) bool {
	if aggregate.PharmacyID().IsEqual(callerID) {
		return true
	}
	partner := aggregate.DeliveryPartnerID()
	return partner != nil && partner.IsEqual(callerID)
}
