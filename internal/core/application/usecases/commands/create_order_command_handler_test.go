package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pharmacy/internal/core/application/usecases/commands"
	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/domain/model/request"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateOrderRequestRepository struct{ mock.Mock }

func (m *MockCreateOrderRequestRepository) Add(_ context.Context, _ *request.Request) error {
	return errors.New("not implemented in mock")
}
func (m *MockCreateOrderRequestRepository) Update(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockCreateOrderRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}
func (m *MockCreateOrderRequestRepository) GetAllPendingOlderThan(_ context.Context, _ time.Time) ([]*request.Request, error) {
	return nil, errors.New("not implemented in mock")
}

type MockCreateOrderOrderRepository struct{ mock.Mock }

func (m *MockCreateOrderOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockCreateOrderOrderRepository) Update(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockCreateOrderOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockCreateOrderOrderRepository) GetByRequestID(ctx context.Context, requestID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockCreateOrderOrderRepository) MaxSequenceForYear(ctx context.Context, year int) (int, error) {
	args := m.Called(ctx, year)
	return args.Int(0), args.Error(1)
}

type MockCreateOrderInventoryRepository struct{ mock.Mock }

func (m *MockCreateOrderInventoryRepository) Add(_ context.Context, _ *inventory.Item) error {
	return errors.New("not implemented in mock")
}
func (m *MockCreateOrderInventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockCreateOrderInventoryRepository) Get(_ context.Context, _ kernel.UUID) (*inventory.Item, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockCreateOrderInventoryRepository) GetByMedication(ctx context.Context, pharmacyID kernel.UUID, medicationName string) (*inventory.Item, error) {
	args := m.Called(ctx, pharmacyID, medicationName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}
func (m *MockCreateOrderInventoryRepository) GetAllLowStock(_ context.Context) ([]*inventory.Item, error) {
	return nil, errors.New("not implemented in mock")
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) RequestRepository() ports.RequestRepository {
	args := m.Called()
	return args.Get(0).(ports.RequestRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func availableRequest(t *testing.T, pharmacyID kernel.UUID, quantity int) *request.Request {
	t.Helper()

	r, err := request.RestoreRequest(request.RestoreRequestParams{
		ID:             kernel.NewUUID(),
		PatientID:      kernel.NewUUID(),
		PharmacyID:     pharmacyID,
		MedicationName: "Amoxicillin 500mg",
		Quantity:       quantity,
		Urgency:        request.UrgencyNormal,
		Status:         request.StatusAvailable,
		RequestedAt:    time.Now().UTC().Add(-time.Hour),
	})
	require.NoError(t, err)
	return r
}

func stockedItem(t *testing.T, pharmacyID kernel.UUID, quantity int) *inventory.Item {
	t.Helper()

	unitPrice, err := kernel.NewMoneyFromFloat(5.99)
	require.NoError(t, err)
	item, err := inventory.NewItem(
		kernel.NewUUID(), pharmacyID, "Amoxicillin 500mg", "antibiotic", "capsule",
		quantity, unitPrice, 3,
	)
	require.NoError(t, err)
	return item
}

func createOrderCommand(t *testing.T, requestID, callerID kernel.UUID, items []commands.OrderLine) commands.CreateOrderCommand {
	t.Helper()

	addr, err := order.NewAddress("12 King Fahd Rd", "Riyadh", "11564", "+966500000001", nil)
	require.NoError(t, err)
	fee, err := kernel.NewMoneyFromFloat(3.00)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), requestID, callerID, items, addr, fee, nil, nil)
	require.NoError(t, err)
	return cmd
}

func amoxicillinLine(quantity int) []commands.OrderLine {
	return []commands.OrderLine{{MedicationName: "Amoxicillin 500mg", Quantity: quantity}}
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	pharmacyID := kernel.NewUUID()
	req := availableRequest(t, pharmacyID, 2)
	item := stockedItem(t, pharmacyID, 10)
	cmd := createOrderCommand(t, req.ID(), req.PatientID(), amoxicillinLine(2))

	requestRepo := new(MockCreateOrderRequestRepository)
	orderRepo := new(MockCreateOrderOrderRepository)
	inventoryRepo := new(MockCreateOrderInventoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByRequestID", ctx, req.ID()).
			Return(nil, errs.NewObjectNotFoundError("requestID", req.ID())).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		inventoryRepo.On("GetByMedication", ctx, pharmacyID, "Amoxicillin 500mg").Return(item, nil).Once(),
		inventoryRepo.On("Update", ctx, item).Return(nil).Once(),
		orderRepo.On("MaxSequenceForYear", ctx, mock.AnythingOfType("int")).Return(41, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		requestRepo.On("Update", ctx, req).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, stubNotifier{})
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 8, item.Quantity(), "reserved two units")
	require.Equal(t, request.StatusFulfilled, req.Status())

	created := orderRepo.Calls[2].Arguments.Get(1).(*order.Order)
	require.Equal(t, 42, created.Number().Sequence())
	require.Equal(t, order.StatusConfirmed, created.Status())
	require.Equal(t, order.PaymentPending, created.PaymentStatus())
	require.Equal(t, "15.58", created.Total().String())

	requestRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	inventoryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_RequestNotAvailable(t *testing.T) {
	ctx := t.Context()
	pharmacyID := kernel.NewUUID()
	req := pendingRequest(t, pharmacyID)
	cmd := createOrderCommand(t, req.ID(), req.PatientID(), amoxicillinLine(2))

	requestRepo := new(MockCreateOrderRequestRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, stubNotifier{})
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ForeignRequest(t *testing.T) {
	ctx := t.Context()
	req := availableRequest(t, kernel.NewUUID(), 2)
	stranger := kernel.NewUUID()
	cmd := createOrderCommand(t, req.ID(), stranger, amoxicillinLine(2))

	requestRepo := new(MockCreateOrderRequestRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, stubNotifier{})
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_DuplicateOrder(t *testing.T) {
	ctx := t.Context()
	pharmacyID := kernel.NewUUID()
	req := availableRequest(t, pharmacyID, 2)
	cmd := createOrderCommand(t, req.ID(), req.PatientID(), amoxicillinLine(2))
	existing := &order.Order{}

	requestRepo := new(MockCreateOrderRequestRepository)
	orderRepo := new(MockCreateOrderOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByRequestID", ctx, req.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, stubNotifier{})
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	pharmacyID := kernel.NewUUID()
	req := availableRequest(t, pharmacyID, 5)
	item := stockedItem(t, pharmacyID, 3)
	cmd := createOrderCommand(t, req.ID(), req.PatientID(), amoxicillinLine(5))

	requestRepo := new(MockCreateOrderRequestRepository)
	orderRepo := new(MockCreateOrderOrderRepository)
	inventoryRepo := new(MockCreateOrderInventoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByRequestID", ctx, req.ID()).
			Return(nil, errs.NewObjectNotFoundError("requestID", req.ID())).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		inventoryRepo.On("GetByMedication", ctx, pharmacyID, "Amoxicillin 500mg").Return(item, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, stubNotifier{})
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInsufficientStock)
	require.Equal(t, 3, item.Quantity(), "stock untouched after failed reservation")
	require.Equal(t, request.StatusAvailable, req.Status())
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_MultipleLines(t *testing.T) {
	ctx := t.Context()
	pharmacyID := kernel.NewUUID()
	req := availableRequest(t, pharmacyID, 2)
	amoxicillin := stockedItem(t, pharmacyID, 10)

	ibuprofenPrice, err := kernel.NewMoneyFromFloat(2.49)
	require.NoError(t, err)
	ibuprofen, err := inventory.NewItem(
		kernel.NewUUID(), pharmacyID, "Ibuprofen 200mg", "analgesic", "tablet",
		20, ibuprofenPrice, 5,
	)
	require.NoError(t, err)

	cmd := createOrderCommand(t, req.ID(), req.PatientID(), []commands.OrderLine{
		{MedicationName: "Amoxicillin 500mg", Quantity: 2},
		{MedicationName: "Ibuprofen 200mg", Quantity: 3},
	})

	requestRepo := new(MockCreateOrderRequestRepository)
	orderRepo := new(MockCreateOrderOrderRepository)
	inventoryRepo := new(MockCreateOrderInventoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByRequestID", ctx, req.ID()).
			Return(nil, errs.NewObjectNotFoundError("requestID", req.ID())).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		inventoryRepo.On("GetByMedication", ctx, pharmacyID, "Amoxicillin 500mg").Return(amoxicillin, nil).Once(),
		inventoryRepo.On("Update", ctx, amoxicillin).Return(nil).Once(),
		inventoryRepo.On("GetByMedication", ctx, pharmacyID, "Ibuprofen 200mg").Return(ibuprofen, nil).Once(),
		inventoryRepo.On("Update", ctx, ibuprofen).Return(nil).Once(),
		orderRepo.On("MaxSequenceForYear", ctx, mock.AnythingOfType("int")).Return(0, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		requestRepo.On("Update", ctx, req).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, stubNotifier{})
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 8, amoxicillin.Quantity())
	require.Equal(t, 17, ibuprofen.Quantity())

	created := orderRepo.Calls[2].Arguments.Get(1).(*order.Order)
	require.Len(t, created.Items(), 2)

	inventoryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownMedication(t *testing.T) {
	ctx := t.Context()
	pharmacyID := kernel.NewUUID()
	req := availableRequest(t, pharmacyID, 2)
	cmd := createOrderCommand(t, req.ID(), req.PatientID(), []commands.OrderLine{
		{MedicationName: "Paracetamol 500mg", Quantity: 1},
	})

	requestRepo := new(MockCreateOrderRequestRepository)
	orderRepo := new(MockCreateOrderOrderRepository)
	inventoryRepo := new(MockCreateOrderInventoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, req.ID()).Return(req, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByRequestID", ctx, req.ID()).
			Return(nil, errs.NewObjectNotFoundError("requestID", req.ID())).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		inventoryRepo.On("GetByMedication", ctx, pharmacyID, "Paracetamol 500mg").
			Return(nil, errs.NewObjectNotFoundError("medicationName", "Paracetamol 500mg")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, stubNotifier{})
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	inventoryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
