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

// stubNotifier satisfies ports.Notifier for handlers whose notification legs
// are not under test. Shared by the handler tests in this package.
type stubNotifier struct{}

func (stubNotifier) RequestCreated(_ context.Context, _ *request.Request)       {}
func (stubNotifier) RequestStatusChanged(_ context.Context, _ *request.Request) {}
func (stubNotifier) RequestCancelled(_ context.Context, _ *request.Request)     {}
func (stubNotifier) OrderCreated(_ context.Context, _ *order.Order)             {}
func (stubNotifier) OrderStatusChanged(_ context.Context, _ *order.Order)       {}
func (stubNotifier) OrderCancelled(_ context.Context, _ *order.Order)           {}
func (stubNotifier) PaymentReceived(_ context.Context, _ *order.Order)          {}
func (stubNotifier) LowStock(_ context.Context, _ []*inventory.Item)            {}

type MockRequestStatusRepository struct{ mock.Mock }

func (m *MockRequestStatusRepository) Add(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRequestStatusRepository) Update(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRequestStatusRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}
func (m *MockRequestStatusRepository) GetAllPendingOlderThan(_ context.Context, _ time.Time) ([]*request.Request, error) {
	return nil, errors.New("not implemented in mock")
}

type MockRequestUoW struct{ mock.Mock }

func (m *MockRequestUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRequestUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRequestUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRequestUoW) RequestRepository() ports.RequestRepository {
	args := m.Called()
	return args.Get(0).(ports.RequestRepository)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	args := m.Called()
	return args.Get(0).(commands.RequestUoW)
}

func pendingRequest(t *testing.T, pharmacyID kernel.UUID) *request.Request {
	t.Helper()

	r, err := request.NewRequest(
		kernel.NewUUID(), kernel.NewUUID(), pharmacyID,
		"Amoxicillin 500mg", 2, request.UrgencyNormal, false, "", nil,
	)
	require.NoError(t, err)
	return r
}

func TestChangeRequestStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	pharmacyID := kernel.NewUUID()
	req := pendingRequest(t, pharmacyID)
	cmd, _ := commands.NewChangeRequestStatusCommand(
		req.ID(), pharmacyID, request.StatusProcessing, nil, nil, nil,
	)

	repo := new(MockRequestStatusRepository)
	uow := new(MockRequestUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("Get", ctx, req.ID()).Return(req, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*request.Request")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeRequestStatusCommandHandler(factory, stubNotifier{})
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, request.StatusProcessing, req.Status())
	require.NotNil(t, req.RespondedAt())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestChangeRequestStatusCommandHandler_Handle_ForeignPharmacy(t *testing.T) {
	ctx := t.Context()
	req := pendingRequest(t, kernel.NewUUID())
	stranger := kernel.NewUUID()
	cmd, _ := commands.NewChangeRequestStatusCommand(
		req.ID(), stranger, request.StatusProcessing, nil, nil, nil,
	)

	repo := new(MockRequestStatusRepository)
	uow := new(MockRequestUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("Get", ctx, req.ID()).Return(req, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeRequestStatusCommandHandler(factory, stubNotifier{})
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	require.Equal(t, request.StatusPending, req.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangeRequestStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	pharmacyID := kernel.NewUUID()
	req := pendingRequest(t, pharmacyID)
	cmd, _ := commands.NewChangeRequestStatusCommand(
		req.ID(), pharmacyID, request.StatusFulfilled, nil, nil, nil,
	)

	repo := new(MockRequestStatusRepository)
	uow := new(MockRequestUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("Get", ctx, req.ID()).Return(req, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeRequestStatusCommandHandler(factory, stubNotifier{})
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangeRequestStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	requestID := kernel.NewUUID()
	cmd, _ := commands.NewChangeRequestStatusCommand(
		requestID, kernel.NewUUID(), request.StatusProcessing, nil, nil, nil,
	)

	repo := new(MockRequestStatusRepository)
	uow := new(MockRequestUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("Get", ctx, requestID).
			Return(nil, errs.NewObjectNotFoundError("requestID", requestID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeRequestStatusCommandHandler(factory, stubNotifier{})
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
