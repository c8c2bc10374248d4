package queries_test

import (
	"context"
	"testing"
	"time"

	"commerce/internal/adapters/out/postgres/orderrepo"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetIncompleteOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetIncompleteOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetIncompleteOrdersQueryHandlerTestSuite) SetupSuite() {
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

	suite.handler = queries.NewGetIncompleteOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetIncompleteOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
}

func (suite *GetIncompleteOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetIncompleteOrdersQueryHandlerTestSuite) addCart() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "jane@example.com")
	suite.Require().NoError(err)
	price, err := kernel.NewMoneyFromString("10.00")
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddItem(kernel.NewUUID(), kernel.NewUUID(), price, 1))

	_, err = o.Update(context.Background(), order.Collaborators{})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *GetIncompleteOrdersQueryHandlerTestSuite) TestHandle_ReturnsOnlyIncomplete() {
	ctx := context.Background()

	open := suite.addCart()

	canceled := suite.addCart()
	suite.Require().NoError(canceled.ExpireCart())
	suite.Require().NoError(suite.orderRepo.Update(ctx, canceled))

	query := queries.NewGetIncompleteOrdersQuery()
	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(response, 1)
	suite.True(response[0].ID.IsEqual(open.ID()))
	suite.Equal(order.StateCart, response[0].State)
	price, merr := kernel.NewMoneyFromString("10.00")
	suite.Require().NoError(merr)
	suite.True(response[0].Total.IsEqual(price))
}

func (suite *GetIncompleteOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase() {
	query := queries.NewGetIncompleteOrdersQuery()

	response, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(response)
}

func TestGetIncompleteOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetIncompleteOrdersQueryHandlerTestSuite))
}
