package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Canzo32/farmer-web/internal/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestLoginDecodesAuthResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var in types.LoginInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "ama@example.com", in.Email)

		json.NewEncoder(w).Encode(types.AuthResponse{
			AccessToken: "tok-1",
			TokenType:   "bearer",
			User:        types.UserProfile{ID: "u1", Name: "Ama", Role: types.RoleBuyer},
		})
	})

	resp, err := client.Login(context.Background(), types.LoginInput{
		Email:    "ama@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.AccessToken)
	assert.Equal(t, "Ama", resp.User.Name)
	assert.Equal(t, "", client.Token(), "Login must not install the token itself")
}

func TestBearerTokenHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(types.UserProfile{ID: "u1"})
	})

	client.SetToken("tok-xyz")
	_, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", gotAuth)

	client.SetToken("")
	_, err = client.Me(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "cleared token must not be sent")
}

func TestErrorDetailPreferred(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	})

	_, err := client.Login(context.Background(), types.LoginInput{
		Email:    "ama@example.com",
		Password: "wrong",
	})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Incorrect email or password", apiErr.Detail)
	assert.Equal(t, "Incorrect email or password", err.Error())
	assert.True(t, apiErr.IsAuthError())
}

func TestErrorFallbackMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := client.ListProduce(context.Background(), CatalogQuery{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Failed to load produce", apiErr.Detail)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.False(t, apiErr.IsAuthError())
}

func TestCatalogQueryEncoding(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]types.ProduceListing{})
	})

	_, err := client.ListProduce(context.Background(), CatalogQuery{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery)

	_, err = client.ListProduce(context.Background(), CatalogQuery{
		Category: types.CategoryFruits,
		Region:   types.RegionAccra,
		Search:   "fresh mango",
	})
	require.NoError(t, err)
	assert.Equal(t, "category=fruits&region=accra&search=fresh+mango", gotQuery)
}

func TestGetProduceByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/produce/p1", r.URL.Path)
		json.NewEncoder(w).Encode(types.ProduceListing{ID: "p1", Title: "Mango", UniqueCode: "AB12CD34"})
	})

	listing, err := client.GetProduce(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Mango", listing.Title)
	assert.Equal(t, "AB12CD34", listing.UniqueCode)
}

func TestCreateOrderRoundTrip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		var in types.OrderCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))

		json.NewEncoder(w).Encode(types.Order{
			ID:        "o1",
			ProduceID: in.ProduceID,
			Quantity:  in.Quantity,
			Status:    types.OrderPending,
		})
	})

	order, err := client.CreateOrder(context.Background(), types.OrderCreate{
		ProduceID: "p1",
		Quantity:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, types.OrderPending, order.Status)
}

func TestUpdateOrderStatusPath(t *testing.T) {
	var gotPath, gotQuery, gotMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotMethod = r.Method
		json.NewEncoder(w).Encode(types.Order{ID: "o1", Status: types.OrderConfirmed})
	})

	order, err := client.UpdateOrderStatus(context.Background(), "o1", types.OrderConfirmed)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/orders/o1/status", gotPath)
	assert.Equal(t, "status=confirmed", gotQuery)
	assert.Equal(t, types.OrderConfirmed, order.Status)
}

func TestDashboardStatsOmitsAbsentFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard/stats", r.URL.Path)
		w.Write([]byte(`{"total_orders": 5, "pending_orders": 2}`))
	})

	stats, err := client.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalOrders)
	assert.Equal(t, 2, stats.PendingOrders)
	assert.Zero(t, stats.TotalProduce)
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]types.Order{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListOrders(ctx)
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("")
	assert.Equal(t, "http://localhost:8000/api", cfg.BaseURL)
	assert.NotZero(t, cfg.Timeout)

	cfg = DefaultConfig("https://agrimarket.example.com/api")
	assert.Equal(t, "https://agrimarket.example.com/api", cfg.BaseURL)
}
