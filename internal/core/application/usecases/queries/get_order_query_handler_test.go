package queries_test

import (
	"context"
	"testing"
	"time"

	"commerce/internal/adapters/out/postgres/orderrepo"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {}

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&orderrepo.PaymentDTO{},
		&orderrepo.ShipmentDTO{},
		&orderrepo.InventoryUnitDTO{},
		&orderrepo.AdjustmentDTO{},
		&orderrepo.ReturnAuthorizationDTO{},
		&orderrepo.ReturnAuthorizationUnitDTO{},
		&orderrepo.StateEventDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderQueryHandlerTestSuite) mustMoney(s string) kernel.Money {
	m, err := kernel.NewMoneyFromString(s)
	suite.Require().NoError(err)
	return m
}

func (suite *GetOrderQueryHandlerTestSuite) addCart() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "jane@example.com")
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddItem(kernel.NewUUID(), kernel.NewUUID(), suite.mustMoney("10.00"), 2))
	suite.Require().NoError(o.AddItem(kernel.NewUUID(), kernel.NewUUID(), suite.mustMoney("4.00"), 1))

	_, err = o.Update(context.Background(), order.Collaborators{})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ByID() {
	ctx := context.Background()
	testOrder := suite.addCart()

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(response.ID.IsEqual(testOrder.ID()))
	suite.True(response.Number.IsEqual(testOrder.Number()))
	suite.Equal("jane@example.com", response.Email)
	suite.Equal(order.StateCart, response.State)
	suite.True(response.ItemTotal.IsEqual(suite.mustMoney("24.00")))
	suite.True(response.Total.IsEqual(suite.mustMoney("24.00")))
	suite.Nil(response.CompletedAt)
	suite.Require().Len(response.LineItems, 2)
	suite.Equal(3, response.LineItems[0].Quantity+response.LineItems[1].Quantity)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ByNumber() {
	ctx := context.Background()
	testOrder := suite.addCart()

	query, err := queries.NewGetOrderQueryByNumber(testOrder.Number())
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.True(response.ID.IsEqual(testOrder.ID()))
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFoundErr)
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
