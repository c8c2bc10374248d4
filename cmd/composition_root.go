package cmd

import (
	"context"
	"log/slog"

	"commerce/internal/adapters/out/inventory"
	"commerce/internal/adapters/out/payments"
	"commerce/internal/adapters/out/postgres"
	"commerce/internal/adapters/out/postgres/catalogrepo"
	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/model/shipping"
	"commerce/internal/core/domain/model/tax"
	"commerce/internal/jobs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	paymentLimit kernel.Money
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	paymentLimit, err := kernel.NewMoneyFromString(configs.PaymentLimit)
	if err != nil {
		// No parseable limit disables the gateway cap.
		paymentLimit = kernel.ZeroMoney()
	}

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		paymentLimit: paymentLimit,
	}
}

// Collaborators bundles the payment, tax, and inventory services the order
// state machine hooks consult.
func (c *CompositionRoot) Collaborators() order.Collaborators {
	return order.Collaborators{
		Payments:  payments.NewGateway(c.paymentLimit),
		TaxRates:  catalogrepo.NewTaxMatcher(catalogrepo.NewGormTaxRateRepository(c.gormDB)),
		Inventory: inventory.NewAllocator(),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAddLineItemCommandHandler() commands.AddLineItemCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddLineItemCommandHandler(f)
}

func (c *CompositionRoot) CreateAddPaymentCommandHandler() commands.AddPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceCheckoutCommandHandler() commands.AdvanceCheckoutCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceCheckoutCommandHandler(f, c.Collaborators())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateResumeOrderCommandHandler() commands.ResumeOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResumeOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAuthorizeReturnCommandHandler() commands.AuthorizeReturnCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAuthorizeReturnCommandHandler(f)
}

func (c *CompositionRoot) CreateReturnOrderCommandHandler() commands.ReturnOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReturnOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateRestoreOrderStateCommandHandler() commands.RestoreOrderStateCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRestoreOrderStateCommandHandler(f, c.Collaborators())
}

func (c *CompositionRoot) CreateReconcileOrdersCommandHandler() commands.ReconcileOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileOrdersCommandHandler(f, c.Collaborators())
}

func (c *CompositionRoot) CreateCancelStaleCartsCommandHandler() commands.CancelStaleCartsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelStaleCartsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetIncompleteOrdersQueryHandler() queries.GetIncompleteOrdersQueryHandler {
	return queries.NewGetIncompleteOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(cartMaxAgeHours int, logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReconcileOrdersCommandHandler(),
		c.CreateCancelStaleCartsCommandHandler(),
		cartMaxAgeHours,
		logger,
	)
}

// SeedCatalogs upserts the built-in shipping methods and tax rates. Fixed
// identifiers keep the seed idempotent across restarts.
func (c *CompositionRoot) SeedCatalogs(ctx context.Context) error {
	methods := catalogrepo.NewGormShippingMethodRepository(c.gormDB)
	for _, seed := range seedShippingMethods() {
		if err := methods.Upsert(ctx, seed); err != nil {
			return err
		}
	}

	rates := catalogrepo.NewGormTaxRateRepository(c.gormDB)
	for _, seed := range seedTaxRates() {
		if err := rates.Upsert(ctx, seed); err != nil {
			return err
		}
	}

	return nil
}

func seedShippingMethods() []*shipping.Method {
	ground := mustMethod("0b4bd5ca-9b20-4d5c-95a3-1a1b0a6b4c01", "Ground", "5.00",
		[]string{"US", "CA"})
	express := mustMethod("0b4bd5ca-9b20-4d5c-95a3-1a1b0a6b4c02", "Express", "12.00",
		[]string{"US", "CA", "GB", "DE", "FR"})
	return []*shipping.Method{ground, express}
}

func seedTaxRates() []*tax.Rate {
	return []*tax.Rate{
		mustRate("7c1dd0fa-52e7-4f40-8a9d-2e3f4a5b6c01", "US Sales Tax", "0.05", "US"),
		mustRate("7c1dd0fa-52e7-4f40-8a9d-2e3f4a5b6c02", "CA GST", "0.05", "CA"),
	}
}

func mustMethod(id, name, cost string, countries []string) *shipping.Method {
	methodID, err := kernel.UUIDFromString(id)
	if err != nil {
		panic(err)
	}
	money, err := kernel.NewMoneyFromString(cost)
	if err != nil {
		panic(err)
	}
	method, err := shipping.NewMethod(methodID, name, money, countries)
	if err != nil {
		panic(err)
	}
	return method
}

func mustRate(id, label, percentage, country string) *tax.Rate {
	rateID, err := kernel.UUIDFromString(id)
	if err != nil {
		panic(err)
	}
	pct, err := decimal.NewFromString(percentage)
	if err != nil {
		panic(err)
	}
	rate, err := tax.NewRate(rateID, label, pct, country)
	if err != nil {
		panic(err)
	}
	return rate
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
