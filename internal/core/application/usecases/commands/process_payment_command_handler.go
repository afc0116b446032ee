package commands

import (
	"context"

	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"
)

// ProcessPaymentCommandHandler charges an order through the payment gateway.
// A declined or errored charge is recorded as a failed payment on the order
// and reported as a payment-failed error; the order itself stays active and
// the payment can be retried.
type ProcessPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
	notifier   ports.Notifier
}

// NewProcessPaymentCommandHandler creates a handler for payment processing.
func NewProcessPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	notifier ports.Notifier,
) ProcessPaymentCommandHandler {
	return ProcessPaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		notifier:   notifier,
	}
}

// Handle processes the payment command.
// Only the owning patient may pay. The gateway intent is created and
// confirmed outside any prior payment state; the resulting paid or failed
// mark is persisted transactionally either way.
func (h *ProcessPaymentCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentCommand) error {
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

	if !aggregate.IsOwnedBy(cmd.CallerID()) {
		return errs.NewForbiddenError(cmd.CallerID().String(), "order", aggregate.ID().String())
	}
	if err := aggregate.CanAttemptPayment(); err != nil {
		return err
	}

	intent, gatewayErr := h.gateway.CreatePaymentIntent(
		ctx, aggregate.ID(), aggregate.Number().String(), aggregate.Total(), cmd.Method().String(),
	)
	if gatewayErr == nil {
		intent, gatewayErr = h.gateway.ConfirmPaymentIntent(ctx, intent.ID)
	}

	if gatewayErr != nil {
		if err := aggregate.MarkPaymentFailed(cmd.Method()); err != nil {
			return err
		}
		if err := repo.Update(ctx, aggregate); err != nil {
			return err
		}
		if err := uow.Commit(ctx); err != nil {
			return err
		}
		return errs.NewPaymentFailedError(aggregate.ID().String(), gatewayErr)
	}

	if err := aggregate.MarkPaid(cmd.Method(), intent.ID); err != nil {
		return err
	}
	if err := repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.PaymentReceived(ctx, aggregate)
	return nil
}
