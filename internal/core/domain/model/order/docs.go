// Package order provides the domain model for the commerce order lifecycle.
// It implements the Order aggregate root with its checkout state machine,
// derived-field recomputation pipeline, and adjustment synchronization.
//
// The package includes:
//   - Order: the aggregate root owning line items, payments, shipments,
//     inventory units, adjustments, and the lifecycle event log
//   - State/Event: the checkout state machine (machine.go) with guarded
//     transitions and pre/post hooks
//   - Update: the fixed recomputation pipeline deriving totals, payment
//     state, and shipment state (update.go)
//   - Adjustment/Originator: charges owned by tax rates and shipping
//     methods, kept in sync by CreateTaxCharge and CreateShipment
//
// Key business rules:
//   - Checkout walks cart -> address -> delivery -> payment -> confirm ->
//     complete via the next event; cancel, resume, and the return flow
//     branch off it
//   - Derived fields are owned exclusively by the Update pipeline and are
//     persisted as one atomic snapshot
//   - The order carries at most one tax charge and one shipping charge,
//     each owned by a single originator
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
