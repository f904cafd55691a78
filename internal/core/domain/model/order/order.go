package order

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Item is one line of an order as reported by the upstream sales system.
type Item struct {
	SKU      string
	Name     string
	Quantity int
}

// Order is the aggregate root tracking one physical delivery.
//
// Invariants:
//   - the identifier is an opaque upstream string, unique and immutable
//   - status is always a member of the closed Status set
//   - updatedAt never precedes createdAt and is refreshed by every
//     successful status transition, including no-op ones
//   - instances are only created through NewOrder or RestoreOrder
//
// The aggregate is owned by the order store; other components read and
// mutate it exclusively through the store's operations.
type Order struct {
	id                string
	customerName      string
	location          string
	address           string
	buildingCode      string
	extractedLocation string
	remarks           string
	items             []Item
	status            Status
	createdAt         time.Time
	updatedAt         time.Time

	isConstructed bool
}

// NewOrder creates an order fresh from the upstream source in PreDelivery
// status. The id and customer name are required; everything else is optional
// upstream data applied through the setters.
func NewOrder(id, customerName, address string) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        PreDelivery,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
	); err != nil {
		return nil, err
	}

	o.address = address
	return o, nil
}

// RestoreOrder reconstructs an order from persistence. All fields are taken
// as stored; only the identifier and status are re-validated.
func RestoreOrder(
	id, customerName, location, address, buildingCode, extractedLocation, remarks string,
	items []Item,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		location:          location,
		address:           address,
		buildingCode:      buildingCode,
		extractedLocation: extractedLocation,
		remarks:           remarks,
		items:             append([]Item(nil), items...),
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	return o, nil
}

// Validate ensures the Order was properly constructed and did not bypass
// the factory functions. Called when rehydrating from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the upstream order identifier.
func (o *Order) ID() string {
	return o.id
}

// CustomerName returns the ordering customer or department.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Location returns the free-text delivery location.
func (o *Order) Location() string {
	return o.location
}

// Address returns the full delivery address.
func (o *Order) Address() string {
	return o.address
}

// BuildingCode returns the structured building code, if the upstream
// source supplied one.
func (o *Order) BuildingCode() string {
	return o.buildingCode
}

// ExtractedLocation returns the location string extracted upstream.
func (o *Order) ExtractedLocation() string {
	return o.extractedLocation
}

// Remarks returns the free-text delivery remarks.
func (o *Order) Remarks() string {
	return o.remarks
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last successful mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus moves the order to the target status and refreshes updatedAt.
// The target must be a member of the closed Status set; beyond that any
// transition is accepted, including target == current. Restricting the
// transition graph is the job of an injectable policy, not of the aggregate.
func (o *Order) ChangeStatus(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	o.status = target
	o.updatedAt = time.Now().UTC()
	return nil
}

// SetDeliveryDetails applies the upstream location fields. Extraction of
// building codes happens upstream; the values are carried verbatim.
func (o *Order) SetDeliveryDetails(location, buildingCode, extractedLocation, remarks string) {
	o.location = location
	o.buildingCode = buildingCode
	o.extractedLocation = extractedLocation
	o.remarks = remarks
}

// SetItems replaces the order lines with data from the upstream source.
func (o *Order) SetItems(items []Item) {
	o.items = append([]Item(nil), items...)
}

// Matches reports whether the search term appears, case-insensitively, in
// any of the searchable fields: id, customer name, address, extracted
// location or building code. An empty term matches everything.
func (o *Order) Matches(search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}

	for _, field := range []string{
		o.id,
		o.customerName,
		o.address,
		o.extractedLocation,
		o.buildingCode,
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (o *Order) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("orderID")
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = customerName
	return nil
}
