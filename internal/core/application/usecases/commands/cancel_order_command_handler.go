package commands

import (
	"context"
	"time"

	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"
)

// CancelOrderCommandHandler coordinates order cancellation. In one
// transaction it cancels the order, releases every reserved line item back
// to inventory, refunds a paid order through the gateway, and reopens the
// originating request to available. A refund failure aborts the whole
// cancellation: the order stays active and nothing is released.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
	notifier   ports.Notifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
// Requires a UoWFactory spanning request, order, and inventory repositories.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	gateway ports.PaymentGateway,
	notifier ports.Notifier,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		notifier:   notifier,
	}
}

// Handle processes the cancellation command.
// The owning patient or the fulfilling pharmacy may cancel; delivered and
// already cancelled orders cannot be. The patient is notified after commit.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !aggregate.IsOwnedBy(cmd.CallerID()) && !aggregate.PharmacyID().IsEqual(cmd.CallerID()) {
		return errs.NewForbiddenError(cmd.CallerID().String(), "order", aggregate.ID().String())
	}

	if err := aggregate.Cancel(time.Now().UTC(), cmd.Reason()); err != nil {
		return err
	}

	inventoryRepo := uow.InventoryRepository()
	for _, lineItem := range aggregate.Items() {
		item, err := inventoryRepo.Get(ctx, lineItem.MedicationID())
		if err != nil {
			return err
		}
		if err := item.Release(lineItem.Quantity()); err != nil {
			return err
		}
		if err := inventoryRepo.Update(ctx, item); err != nil {
			return err
		}
	}

	if aggregate.PaymentStatus() == order.PaymentPaid {
		intentID := aggregate.PaymentIntentID()
		if intentID == nil {
			return errs.NewValueIsRequiredError("paymentIntentID")
		}
		if _, err := h.gateway.CreateRefund(ctx, *intentID); err != nil {
			return errs.NewRefundFailedError(aggregate.ID().String(), *intentID, err)
		}
		if err := aggregate.MarkRefunded(); err != nil {
			return err
		}
	}

	requestRepo := uow.RequestRepository()
	req, err := requestRepo.Get(ctx, aggregate.RequestID())
	if err != nil {
		return err
	}
	if err := req.Reopen(); err != nil {
		return err
	}
	if err := requestRepo.Update(ctx, req); err != nil {
		return err
	}

	if err := orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.OrderCancelled(ctx, aggregate)
	return nil
}
