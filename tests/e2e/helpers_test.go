package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// The suite runs against a live server. Set BASE_URL to enable it; the
// seed accounts below must exist (seller/admin are created out of band,
// regular users are registered on the fly).
const (
	sellerEmail    = "seller@example.com"
	sellerPassword = "password123"
	adminEmail     = "admin@example.com"
	adminPassword  = "password123"
)

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		t.Skip("BASE_URL not set; e2e suite disabled")
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type ProductDTO struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type OrderItemDTO struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"orderId"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderDTO struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"userId"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	Items     []OrderItemDTO `json:"items"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustDecode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal failed: %v body=%s", err, string(body))
	}
	return v
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	return b
}

// registerAndLogin creates a fresh user and returns its token and id.
func registerAndLogin(t *testing.T, c *TestClient, ctx context.Context) (string, int64) {
	t.Helper()

	email := fmt.Sprintf("user-%s@example.com", uuid.NewString())
	reg := map[string]string{"email": email, "password": "password123", "name": "E2E User"}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/register", "", mustMarshal(t, reg))
	requireStatus(t, resp, http.StatusCreated, body)

	return login(t, c, ctx, email, "password123")
}

func login(t *testing.T, c *TestClient, ctx context.Context, email, password string) (string, int64) {
	t.Helper()

	req := map[string]string{"email": email, "password": password}
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", mustMarshal(t, req))
	requireStatus(t, resp, http.StatusOK, body)

	out := mustDecode[LoginResponse](t, body)
	if strings.TrimSpace(out.Token) == "" {
		t.Fatalf("token is empty: body=%s", string(body))
	}
	return out.Token, out.User.ID
}

// createProduct makes a catalog entry through the seller account.
func createProduct(t *testing.T, c *TestClient, ctx context.Context, name string, price float64) ProductDTO {
	t.Helper()

	sellerToken, _ := login(t, c, ctx, sellerEmail, sellerPassword)

	req := map[string]interface{}{"name": name, "price": price}
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/products", sellerToken, mustMarshal(t, req))
	requireStatus(t, resp, http.StatusCreated, body)

	return mustDecode[ProductDTO](t, body)
}
