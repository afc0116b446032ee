package commands

import (
	"context"

	"pharmacy/internal/pkg/errs"
)

// GenerateInvoiceCommandHandler derives and persists the invoice reference
// for an order. The reference is derived from the order number, so repeated
// generation always returns the same value.
type GenerateInvoiceCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewGenerateInvoiceCommandHandler creates a handler for invoice generation.
func NewGenerateInvoiceCommandHandler(uowFactory OrderUoWFactory) GenerateInvoiceCommandHandler {
	return GenerateInvoiceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the invoice command and returns the invoice reference.
// The owning patient or the fulfilling pharmacy may generate the invoice.
func (h *GenerateInvoiceCommandHandler) Handle(ctx context.Context, cmd GenerateInvoiceCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}

	if !aggregate.IsOwnedBy(cmd.CallerID()) && !aggregate.PharmacyID().IsEqual(cmd.CallerID()) {
		return "", errs.NewForbiddenError(cmd.CallerID().String(), "order", aggregate.ID().String())
	}

	reference := aggregate.EnsureInvoice()

	if err := repo.Update(ctx, aggregate); err != nil {
		return "", err
	}

	if err := uow.Commit(ctx); err != nil {
		return "", err
	}

	return reference, nil
}
