package commands

import (
	"context"

	"pharmacy/internal/core/domain/model/request"
	"pharmacy/internal/core/ports"
)

// CreateRequestCommandHandler handles the business logic for request creation.
// New requests start in pending status awaiting a pharmacy response.
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	notifier   ports.Notifier
}

// NewCreateRequestCommandHandler creates a handler for request creation
// operations. Requires a RequestUoWFactory for transactional persistence.
func NewCreateRequestCommandHandler(uowFactory RequestUoWFactory, notifier ports.Notifier) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the request creation command.
// Creates the request in pending status and persists it transactionally.
func (h *CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) error {
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

	aggregate, err := request.NewRequest(
		cmd.RequestID(),
		cmd.PatientID(),
		cmd.PharmacyID(),
		cmd.MedicationName(),
		cmd.Quantity(),
		cmd.Urgency(),
		cmd.PrescriptionRequired(),
		cmd.Notes(),
		cmd.EstimatedAvailability(),
	)
	if err != nil {
		return err
	}

	if err := uow.RequestRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.RequestCreated(ctx, aggregate)
	return nil
}
