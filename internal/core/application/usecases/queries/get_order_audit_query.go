package queries

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetOrderAuditQueryIsNotConstructed = errors.New(
		"GetOrderAuditQuery must be created via NewGetOrderAuditQuery constructor",
	)
)

// GetOrderAuditQuery retrieves the audit trail of one order. The lookup does
// not validate order existence: an unknown id simply has an empty history.
type GetOrderAuditQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderAuditQuery creates an audit trail request for the given order.
func NewGetOrderAuditQuery(orderID string) (GetOrderAuditQuery, error) {
	if orderID == "" {
		return GetOrderAuditQuery{}, errs.NewValueIsRequiredError("orderID")
	}

	return GetOrderAuditQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderAuditQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderAuditQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderAuditQuery) OrderID() string {
	return q.orderID
}
