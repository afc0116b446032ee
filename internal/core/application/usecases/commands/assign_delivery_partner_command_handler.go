package commands

import (
	"context"
	"time"

	"pharmacy/internal/pkg/errs"
)

// AssignDeliveryPartnerCommandHandler handles delivery partner assignment.
// Only the fulfilling pharmacy may assign.
type AssignDeliveryPartnerCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAssignDeliveryPartnerCommandHandler creates a handler for partner
// assignment operations.
func NewAssignDeliveryPartnerCommandHandler(uowFactory OrderUoWFactory) AssignDeliveryPartnerCommandHandler {
	return AssignDeliveryPartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command.
func (h *AssignDeliveryPartnerCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryPartnerCommand) error {
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

	if err := aggregate.AssignDeliveryPartner(cmd.PartnerID(), time.Now().UTC()); err != nil {
		return err
	}

	if err := repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
