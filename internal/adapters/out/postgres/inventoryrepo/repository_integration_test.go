package inventoryrepo_test

import (
	"context"
	"testing"
	"time"

	"pharmacy/internal/adapters/out/postgres/inventoryrepo"
	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// InventoryRepositoryIntegrationTestSuite provides integration tests for
// InventoryRepository using PostgreSQL containers.
type InventoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *inventoryrepo.GormInventoryRepository
	tracker    *MockAggregateTracker
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&inventoryrepo.ItemDTO{}))
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE inventory_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = inventoryrepo.NewGormInventoryRepository(suite.db, suite.tracker)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *InventoryRepositoryIntegrationTestSuite) newStockedItem(pharmacyID kernel.UUID, name string, quantity, threshold int) *inventory.Item {
	unitPrice, err := kernel.NewMoneyFromFloat(5.99)
	suite.Require().NoError(err)

	item, err := inventory.NewItem(
		kernel.NewUUID(), pharmacyID, name, "antibiotic", "tablet",
		quantity, unitPrice, threshold,
	)
	suite.Require().NoError(err)
	return item
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestAdd_ValidItem_RoundTrips() {
	ctx := context.Background()
	pharmacyID := kernel.NewUUID()
	item := suite.newStockedItem(pharmacyID, "Amoxicillin 500mg", 10, 5)

	suite.Require().NoError(suite.repository.Add(ctx, item))

	restored, err := suite.repository.Get(ctx, item.ID())
	suite.Require().NoError(err)
	suite.Equal(item.ID(), restored.ID())
	suite.Equal(pharmacyID, restored.PharmacyID())
	suite.Equal("Amoxicillin 500mg", restored.MedicationName())
	suite.Equal(10, restored.Quantity())
	suite.Equal("5.99", restored.UnitPrice().String())

	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", item.ID(), item)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestUpdate_DrainedItem_PersistsZeroQuantity() {
	ctx := context.Background()
	item := suite.newStockedItem(kernel.NewUUID(), "Amoxicillin 500mg", 2, 1)
	suite.Require().NoError(suite.repository.Add(ctx, item))

	suite.Require().NoError(item.Reserve(2))
	suite.Require().NoError(suite.repository.Update(ctx, item))

	restored, err := suite.repository.Get(ctx, item.ID())
	suite.Require().NoError(err)
	suite.Equal(0, restored.Quantity())
	suite.True(restored.IsLowStock())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestGetByMedication() {
	ctx := context.Background()
	pharmacyID := kernel.NewUUID()
	item := suite.newStockedItem(pharmacyID, "Amoxicillin 500mg", 10, 5)
	suite.Require().NoError(suite.repository.Add(ctx, item))

	// The same medication carried by another pharmacy must not match.
	other := suite.newStockedItem(kernel.NewUUID(), "Amoxicillin 500mg", 3, 1)
	suite.Require().NoError(suite.repository.Add(ctx, other))

	restored, err := suite.repository.GetByMedication(ctx, pharmacyID, "Amoxicillin 500mg")
	suite.Require().NoError(err)
	suite.Equal(item.ID(), restored.ID())

	_, err = suite.repository.GetByMedication(ctx, pharmacyID, "Paracetamol 500mg")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestGetAllLowStock() {
	ctx := context.Background()
	pharmacyID := kernel.NewUUID()

	healthy := suite.newStockedItem(pharmacyID, "Amoxicillin 500mg", 20, 5)
	low := suite.newStockedItem(pharmacyID, "Insulin 100IU", 3, 5)
	atThreshold := suite.newStockedItem(pharmacyID, "Paracetamol 500mg", 5, 5)

	suite.Require().NoError(suite.repository.Add(ctx, healthy))
	suite.Require().NoError(suite.repository.Add(ctx, low))
	suite.Require().NoError(suite.repository.Add(ctx, atThreshold))

	items, err := suite.repository.GetAllLowStock(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(items, 2)

	ids := []kernel.UUID{items[0].ID(), items[1].ID()}
	suite.Contains(ids, low.ID())
	suite.Contains(ids, atThreshold.ID())
}

func TestInventoryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryRepositoryIntegrationTestSuite))
}
