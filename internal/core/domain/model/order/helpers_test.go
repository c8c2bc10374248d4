package order_test

import (
	"context"
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
)

func mustMoney(s string) kernel.Money {
	m, err := kernel.NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// stubRate is a flat-amount tax rate for exercising the synchronizer.
type stubRate struct {
	id     kernel.UUID
	label  string
	amount kernel.Money
}

func newStubRate(label, amount string) *stubRate {
	return &stubRate{id: kernel.NewUUID(), label: label, amount: mustMoney(amount)}
}

func (r *stubRate) OriginatorID() kernel.UUID                 { return r.id }
func (r *stubRate) OriginatorType() string                    { return order.OriginatorTypeTaxRate }
func (r *stubRate) Applicable(o *order.Order) bool            { return true }
func (r *stubRate) ComputeAmount(o *order.Order) kernel.Money { return r.amount }
func (r *stubRate) Label() string                             { return r.label }

// stubMatcher returns a fixed rate, nil when none is configured.
type stubMatcher struct {
	rate order.TaxRate
}

func (m *stubMatcher) Match(ctx context.Context, o *order.Order) (order.TaxRate, error) {
	return m.rate, nil
}

// stubMethod is a flat-cost shipping method.
type stubMethod struct {
	id        kernel.UUID
	name      string
	cost      kernel.Money
	available bool
}

func newStubMethod(name, cost string) *stubMethod {
	return &stubMethod{id: kernel.NewUUID(), name: name, cost: mustMoney(cost), available: true}
}

func (m *stubMethod) OriginatorID() kernel.UUID                 { return m.id }
func (m *stubMethod) OriginatorType() string                    { return order.OriginatorTypeShippingMethod }
func (m *stubMethod) Applicable(o *order.Order) bool            { return true }
func (m *stubMethod) ComputeAmount(o *order.Order) kernel.Money { return m.cost }
func (m *stubMethod) Name() string                              { return m.name }
func (m *stubMethod) Available(o *order.Order) bool             { return m.available }

// stubProcessor settles every payment, or declines all of them.
type stubProcessor struct {
	declined bool
	calls    int
}

func (p *stubProcessor) Process(ctx context.Context, o *order.Order, payment *order.Payment) error {
	p.calls++
	if p.declined {
		return errors.New("card rejected by gateway")
	}
	return nil
}

// stubAllocator hands out one sold unit per ordered quantity, backordering
// the variants it is told to.
type stubAllocator struct {
	backordered map[string]bool
}

func (a *stubAllocator) Allocate(ctx context.Context, o *order.Order) ([]*order.InventoryUnit, error) {
	var units []*order.InventoryUnit
	for _, li := range o.LineItems() {
		status := order.InventoryUnitStatusSold
		if a.backordered[li.VariantID().String()] {
			status = order.InventoryUnitStatusBackordered
		}
		for range li.Quantity() {
			iu, err := order.NewInventoryUnit(kernel.NewUUID(), li.VariantID(), status)
			if err != nil {
				return nil, err
			}
			units = append(units, iu)
		}
	}
	return units, nil
}

func newAddress() kernel.Address {
	addr, err := kernel.NewAddress("Jane", "Doe", "1 Main St", "Springfield", "IL", "62701", "US")
	if err != nil {
		panic(err)
	}
	return addr
}

// cartWithItem builds a cart holding quantity units priced at price.
func cartWithItem(price string, quantity int) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "jane@example.com")
	if err != nil {
		panic(err)
	}
	if err := o.AddItem(kernel.NewUUID(), kernel.NewUUID(), mustMoney(price), quantity); err != nil {
		panic(err)
	}
	return o
}

// completedPayment builds a payment already settled for amount.
func completedPayment(amount string) *order.Payment {
	p, err := order.NewPayment(kernel.NewUUID(), mustMoney(amount), "credit card")
	if err != nil {
		panic(err)
	}
	if err := p.MarkCompleted(); err != nil {
		panic(err)
	}
	return p
}

// checkoutCollaborators wires happy-path stubs for a full checkout walk.
func checkoutCollaborators() order.Collaborators {
	return order.Collaborators{
		Payments:  &stubProcessor{},
		TaxRates:  &stubMatcher{},
		Inventory: &stubAllocator{},
	}
}

// advanceTo walks the order through checkout with the given collaborators
// until it reaches target, panicking when the walk stalls.
func advanceTo(o *order.Order, target order.State, c order.Collaborators) {
	for o.State() != target {
		fired, err := o.Next(context.Background(), c)
		if err != nil {
			panic(err)
		}
		if !fired {
			panic("checkout stalled in state " + o.State().String())
		}
	}
}
