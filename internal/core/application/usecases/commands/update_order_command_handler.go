package commands

import (
	"context"

	"pharmacy/internal/pkg/errs"
)

// UpdateOrderCommandHandler handles pharmacy edits of an order's delivery
// details. Only the fulfilling pharmacy may edit, and only while the order
// is not terminal.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderCommandHandler creates a handler for order edit operations.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order edit command.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
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

	if !aggregate.PharmacyID().IsEqual(cmd.CallerID()) {
		return errs.NewForbiddenError(cmd.CallerID().String(), "order", aggregate.ID().String())
	}

	if err := aggregate.UpdateDetails(cmd.Address(), cmd.DeliveryFee(), cmd.EstimatedDelivery()); err != nil {
		return err
	}

	if err := repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
