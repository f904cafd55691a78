// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS split.
// All commands follow a consistent pattern: a constructor-guarded command
// object, validation, transaction management via a unit of work, and
// persistence through the ports.
package commands

import (
	"dispatch/internal/core/ports"
)

// UnitOfWorkFactory produces the transaction boundary for command handlers.
// Every handler invocation creates its own unit of work so concurrent
// commands stay isolated.
type UnitOfWorkFactory interface {
	Create() ports.UnitOfWork
}
