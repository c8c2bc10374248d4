// Package shipping provides the shipping method domain model. A Method
// originates the order's shipping charge and limits itself to the countries
// it covers.
package shipping
