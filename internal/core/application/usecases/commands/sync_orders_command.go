package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrSyncOrdersCommandIsNotConstructed = errors.New(
		"SyncOrdersCommand must be created via NewSyncOrdersCommand constructor",
	)
)

// syncTargetMatches caps how many started orders one sync run ingests,
// matching the upstream picklist paging (3 pages of 100, first 100 matches).
const syncTargetMatches = 100

// SyncOrdersCommand requests one ingestion run against the upstream
// sales-order source. It carries no parameters; the run always pulls the
// most recent started orders.
type SyncOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewSyncOrdersCommand creates a sync request.
func NewSyncOrdersCommand() SyncOrdersCommand {
	return SyncOrdersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c SyncOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSyncOrdersCommandIsNotConstructed)
}

// SyncReport summarizes one ingestion run.
type SyncReport struct {
	Synced  int
	Created int
	Updated int
}
