package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"commerce/cmd"
	httpin "commerce/internal/adapters/in/http"
	"commerce/internal/adapters/out/postgres/catalogrepo"
	"commerce/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	if err := app.SeedCatalogs(context.Background()); err != nil {
		log.Fatalf("Error seeding catalogs: %v", err)
	}

	jobManager := app.CreateJobManager(configs.CartMaxAgeHours, slog.Default())
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:        goDotEnvVariable("HTTP_PORT"),
		DBHost:          goDotEnvVariable("DB_HOST"),
		DBPort:          goDotEnvVariable("DB_PORT"),
		DBUser:          goDotEnvVariable("DB_USER"),
		DBPassword:      goDotEnvVariable("DB_PASSWORD"),
		DBName:          goDotEnvVariable("DB_NAME"),
		DBSslMode:       goDotEnvVariable("DB_SSLMODE"),
		CartMaxAgeHours: goDotEnvIntVariable("CART_MAX_AGE_HOURS"),
		PaymentLimit:    goDotEnvVariable("PAYMENT_LIMIT"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvIntVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&orderrepo.PaymentDTO{},
		&orderrepo.ShipmentDTO{},
		&orderrepo.InventoryUnitDTO{},
		&orderrepo.AdjustmentDTO{},
		&orderrepo.ReturnAuthorizationDTO{},
		&orderrepo.ReturnAuthorizationUnitDTO{},
		&orderrepo.StateEventDTO{},
		&catalogrepo.ShippingMethodDTO{},
		&catalogrepo.ShippingMethodCountryDTO{},
		&catalogrepo.TaxRateDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	contract, err := httpin.LoadContract(context.Background(), "api/openapi.yml")
	if err != nil {
		log.Fatalf("Error loading OpenAPI contract: %v", err)
	}

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateAddLineItemCommandHandler(),
		app.CreateAddPaymentCommandHandler(),
		app.CreateAdvanceCheckoutCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateResumeOrderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetIncompleteOrdersQueryHandler(),
		contract,
	)

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
