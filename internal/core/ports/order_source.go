package ports

import "context"

// SourceOrder is one sales order as reported by the upstream inventory
// system. The core does not validate how these were produced; location and
// building code extraction happen upstream and arrive here as plain data.
type SourceOrder struct {
	OrderNumber       string
	CustomerName      string
	Address           string
	Location          string
	BuildingCode      string
	ExtractedLocation string
	Remarks           string
	Lines             []SourceLine
}

// SourceLine is one product line of a SourceOrder.
type SourceLine struct {
	SKU      string
	Name     string
	Quantity int
}

// OrderSource is the upstream order-ingestion collaborator. The production
// implementation polls the inventory vendor's sales-order API.
type OrderSource interface {
	// FetchStartedOrders returns recent orders whose upstream inventory
	// status is "started", up to limit entries.
	FetchStartedOrders(ctx context.Context, limit int) ([]SourceOrder, error)
}
