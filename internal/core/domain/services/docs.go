// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the commerce system. It
// implements workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - RateSelector: a domain service for choosing the shipping method an
//     order should use
//   - TaxSelector: a domain service for picking the tax rate that applies
//     to an order's billing country
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
