// Package inflow implements the upstream order source against the inFlow
// inventory sales-order API.
package inflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/core/ports"
)

const (
	requestTimeout = 30 * time.Second

	// apiVersion pins the payload shape through the Accept header.
	apiVersion = "2024-03-12"

	maxPages = 3
	pageSize = 100
)

// Client fetches sales orders from the inFlow API and implements
// ports.OrderSource. Requests carry Bearer auth and a versioned Accept
// header.
type Client struct {
	baseURL   string
	companyID string
	apiKey    string
	client    *http.Client
}

// NewClient creates an inFlow API client.
func NewClient(baseURL, companyID, apiKey string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		companyID: companyID,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

type salesOrder struct {
	OrderNumber     string           `json:"orderNumber"`
	InventoryStatus string           `json:"inventoryStatus"`
	ContactName     string           `json:"contactName"`
	Remarks         string           `json:"orderRemarks"`
	ShippingAddress shippingAddress  `json:"shippingAddress"`
	CustomFields    customFields     `json:"customFields"`
	Lines           []salesOrderLine `json:"lines"`
}

type shippingAddress struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// customFields carries the delivery location data the warehouse team
// maintains in inFlow: custom1 is the building code, custom2 the room or
// drop-off location.
type customFields struct {
	Custom1 string `json:"custom1"`
	Custom2 string `json:"custom2"`
}

type salesOrderLine struct {
	Product  product  `json:"product"`
	Quantity quantity `json:"quantity"`
}

// quantity tolerates the API's habit of sending quantities as either a
// number or a fractional string ("2.0"); the domain tracks whole units.
type quantity int

func (q *quantity) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*q = 0
		return nil
	}

	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	*q = quantity(parsed)
	return nil
}

type product struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

type salesOrderPage struct {
	Items []salesOrder `json:"items"`
}

// FetchStartedOrders pulls recent active unfulfilled orders page by page and
// keeps those whose inventory status is "started" (case-insensitive,
// trimmed), up to limit matches across at most three pages.
func (c *Client) FetchStartedOrders(ctx context.Context, limit int) ([]ports.SourceOrder, error) {
	matches := make([]ports.SourceOrder, 0, limit)

	for page := 0; page < maxPages; page++ {
		orders, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}

		for _, o := range orders {
			if !isStarted(o.InventoryStatus) {
				continue
			}
			matches = append(matches, toSourceOrder(o))
			if len(matches) >= limit {
				return matches, nil
			}
		}

		if len(orders) < pageSize {
			break
		}
	}

	return matches, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) ([]salesOrder, error) {
	endpoint := fmt.Sprintf("%s/%s/sales-orders", c.baseURL, c.companyID)

	params := url.Values{}
	params.Set("include", "lines")
	params.Set("filter[isActive]", "true")
	params.Set("filter[inventoryStatus][]", "unfulfilled")
	params.Set("count", strconv.Itoa(pageSize))
	params.Set("skip", strconv.Itoa(page*pageSize))
	params.Set("sort", "orderDate")
	params.Set("sortDesc", "true")

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build inFlow request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json;version="+apiVersion)

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetch inFlow sales orders: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inFlow API returned status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read inFlow response: %w", err)
	}

	// The API answers with either a paged object or a bare array.
	var payload salesOrderPage
	if err = json.Unmarshal(body, &payload); err == nil && payload.Items != nil {
		return payload.Items, nil
	}

	var orders []salesOrder
	if err = json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("decode inFlow response: %w", err)
	}

	return orders, nil
}

func isStarted(inventoryStatus string) bool {
	return strings.EqualFold(strings.TrimSpace(inventoryStatus), "started")
}

func toSourceOrder(o salesOrder) ports.SourceOrder {
	lines := make([]ports.SourceLine, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, ports.SourceLine{
			SKU:      line.Product.SKU,
			Name:     line.Product.Name,
			Quantity: int(line.Quantity),
		})
	}

	return ports.SourceOrder{
		OrderNumber:       o.OrderNumber,
		CustomerName:      o.ContactName,
		Address:           joinAddress(o.ShippingAddress),
		Location:          o.CustomFields.Custom2,
		BuildingCode:      o.CustomFields.Custom1,
		ExtractedLocation: strings.TrimSpace(o.CustomFields.Custom1 + " " + o.CustomFields.Custom2),
		Remarks:           o.Remarks,
		Lines:             lines,
	}
}

func joinAddress(a shippingAddress) string {
	parts := make([]string, 0, 4)
	for _, part := range []string{a.Address1, a.Address2, a.City, a.State} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, strings.TrimSpace(part))
		}
	}
	return strings.Join(parts, ", ")
}
