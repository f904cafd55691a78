// Package services contains stateless domain services that coordinate
// behavior across the order model without belonging to any single aggregate.
package services
