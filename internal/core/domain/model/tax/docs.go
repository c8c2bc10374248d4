// Package tax provides the tax rate domain model. A Rate originates the
// order's tax charge and computes its amount as a percentage of the order's
// line item total.
package tax
