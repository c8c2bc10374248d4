// Package kernel contains the shared value objects of the commerce domain:
// identifiers (UUID, OrderNumber), Money, and Address.
//
// All kernel types are immutable value objects. Their zero values are invalid
// and must be created through the provided constructor functions, which
// enforce validation at the boundary. Validate() can be called on any value
// received from persistence or external input.
package kernel
