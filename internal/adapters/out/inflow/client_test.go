package inflow_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dispatch/internal/adapters/out/inflow"

	"github.com/stretchr/testify/require"
)

func salesOrderJSON(orderNumber, inventoryStatus string) map[string]any {
	return map[string]any{
		"orderNumber":     orderNumber,
		"inventoryStatus": inventoryStatus,
		"contactName":     "Facilities",
		"orderRemarks":    "Deliver before noon",
		"shippingAddress": map[string]any{
			"address1": "Zachry Engineering Education Complex",
			"city":     "College Station",
			"state":    "TX",
		},
		"customFields": map[string]any{
			"custom1": "ZACH",
			"custom2": "420",
		},
		"lines": []map[string]any{
			{"product": map[string]any{"sku": "CHAIR-01", "name": "Office chair"}, "quantity": "2.0"},
		},
	}
}

func TestClient_FetchStartedOrders_FiltersAndMaps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/acme-co/sales-orders", r.URL.Path)
		require.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		require.Equal(t, "application/json;version=2024-03-12", r.Header.Get("Accept"))

		query := r.URL.Query()
		require.Equal(t, "unfulfilled", query.Get("filter[inventoryStatus][]"))
		require.Equal(t, "true", query.Get("filter[isActive]"))
		require.Equal(t, "100", query.Get("count"))

		payload := map[string]any{"items": []map[string]any{
			salesOrderJSON("SO-1", "Started"),
			salesOrderJSON("SO-2", "unfulfilled"),
			salesOrderJSON("SO-3", "  started  "),
		}}
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	defer server.Close()

	client := inflow.NewClient(server.URL, "acme-co", "secret-key")
	orders, err := client.FetchStartedOrders(t.Context(), 100)
	require.NoError(t, err)

	require.Len(t, orders, 2)
	require.Equal(t, "SO-1", orders[0].OrderNumber)
	require.Equal(t, "SO-3", orders[1].OrderNumber)

	first := orders[0]
	require.Equal(t, "Facilities", first.CustomerName)
	require.Equal(t, "Zachry Engineering Education Complex, College Station, TX", first.Address)
	require.Equal(t, "ZACH", first.BuildingCode)
	require.Equal(t, "ZACH 420", first.ExtractedLocation)
	require.Equal(t, "Deliver before noon", first.Remarks)
	require.Len(t, first.Lines, 1)
	require.Equal(t, "CHAIR-01", first.Lines[0].SKU)
	require.Equal(t, 2, first.Lines[0].Quantity)
}

func TestClient_FetchStartedOrders_StopsAtLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		items := make([]map[string]any, 0, 100)
		for i := 0; i < 100; i++ {
			items = append(items, salesOrderJSON(fmt.Sprintf("SO-%d", i), "started"))
		}
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"items": items}))
	}))
	defer server.Close()

	client := inflow.NewClient(server.URL, "acme-co", "secret-key")
	orders, err := client.FetchStartedOrders(t.Context(), 5)
	require.NoError(t, err)
	require.Len(t, orders, 5)
}

func TestClient_FetchStartedOrders_PagesUntilShortPage(t *testing.T) {
	var skips []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		skips = append(skips, r.URL.Query().Get("skip"))

		// First page full of non-matching orders forces a second fetch;
		// the short second page ends the paging.
		var items []map[string]any
		if r.URL.Query().Get("skip") == "0" {
			for i := 0; i < 100; i++ {
				items = append(items, salesOrderJSON(fmt.Sprintf("SO-%d", i), "unfulfilled"))
			}
		} else {
			items = []map[string]any{salesOrderJSON("SO-LAST", "started")}
		}
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"items": items}))
	}))
	defer server.Close()

	client := inflow.NewClient(server.URL, "acme-co", "secret-key")
	orders, err := client.FetchStartedOrders(t.Context(), 100)
	require.NoError(t, err)

	require.Equal(t, []string{"0", "100"}, skips)
	require.Len(t, orders, 1)
	require.Equal(t, "SO-LAST", orders[0].OrderNumber)
}

func TestClient_FetchStartedOrders_BareArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		payload := []map[string]any{salesOrderJSON("SO-1", "started")}
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	defer server.Close()

	client := inflow.NewClient(server.URL, "acme-co", "secret-key")
	orders, err := client.FetchStartedOrders(t.Context(), 100)
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestClient_FetchStartedOrders_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := inflow.NewClient(server.URL, "acme-co", "bad-key")
	_, err := client.FetchStartedOrders(t.Context(), 100)
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}
