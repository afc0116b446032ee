package commands

import (
	"context"
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/domain/model/request"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"
)

// CreateOrderCommandHandler coordinates order creation from an available
// request. In one transaction it reserves inventory for every requested
// line, issues the next order number for the year, creates the order, and
// marks the request fulfilled. Any failure along the way rolls the whole
// transaction back, so stock is never held by an order that was not created.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order creation
// operations. Requires a UoWFactory spanning request, order, and inventory
// repositories.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order creation command.
// The request must be available, owned by the calling patient, and not
// already have an order. The patient is notified after commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	requestRepo := uow.RequestRepository()
	req, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if !req.IsOwnedBy(cmd.CallerID()) {
		return errs.NewForbiddenError(cmd.CallerID().String(), "request", req.ID().String())
	}
	if req.Status() != request.StatusAvailable {
		return errs.NewInvalidStateError("request", req.Status().String(), "order creation")
	}

	orderRepo := uow.OrderRepository()
	if _, err := orderRepo.GetByRequestID(ctx, req.ID()); err == nil {
		return errs.NewConflictError("requestID", req.ID().String())
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	inventoryRepo := uow.InventoryRepository()
	lineItems := make([]order.LineItem, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		item, err := inventoryRepo.GetByMedication(ctx, req.PharmacyID(), line.MedicationName)
		if err != nil {
			return err
		}
		if err := item.Reserve(line.Quantity); err != nil {
			return err
		}
		if err := inventoryRepo.Update(ctx, item); err != nil {
			return err
		}

		lineItem, err := order.NewLineItem(item.ID(), item.MedicationName(), line.Quantity, item.UnitPrice())
		if err != nil {
			return err
		}
		lineItems = append(lineItems, lineItem)
	}

	now := time.Now().UTC()
	maxSeq, err := orderRepo.MaxSequenceForYear(ctx, now.Year())
	if err != nil {
		return err
	}
	number, err := order.NewNumber(now.Year(), maxSeq+1)
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		number,
		req.ID(),
		req.PatientID(),
		req.PharmacyID(),
		lineItems,
		cmd.Address(),
		cmd.DeliveryFee(),
		cmd.PaymentMethod(),
		now,
	)
	if err != nil {
		return err
	}
	if cmd.EstimatedDelivery() != nil {
		if err := aggregate.UpdateDetails(nil, nil, cmd.EstimatedDelivery()); err != nil {
			return err
		}
	}

	if err := orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err := req.MarkFulfilled(now); err != nil {
		return err
	}
	if err := requestRepo.Update(ctx, req); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.OrderCreated(ctx, aggregate)
	return nil
}
