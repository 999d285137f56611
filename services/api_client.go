package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/models"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
)

// HTTPClient is the part of *http.Client the gateway needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIClient talks to the ordering API. Every call except Login takes the
// session's bearer token; the client itself holds no session state.
type APIClient struct {
	baseURL    string
	httpClient HTTPClient
}

func NewAPIClient(baseURL string, httpClient HTTPClient) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token (form-encoded, as the API
// expects an OAuth2 password form).
func (ac *APIClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ac.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var out tokenResponse
	if err := ac.send(req, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("%w: login response without access_token", ErrAuthentication)
	}
	return out.AccessToken, nil
}

func (ac *APIClient) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := ac.do(ctx, token, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (ac *APIClient) ListRestaurants(ctx context.Context, token string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := ac.do(ctx, token, http.MethodGet, "/restaurants", nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (ac *APIClient) GetRestaurant(ctx context.Context, token string, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := ac.do(ctx, token, http.MethodGet, fmt.Sprintf("/restaurants/%d", id), nil, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (ac *APIClient) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := ac.do(ctx, token, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type createOrderRequest struct {
	Items []models.OrderLine `json:"items"`
}

// CreateOrder submits the lines as a single order. Callers must not send an
// empty order; PlaceOrder enforces that.
func (ac *APIClient) CreateOrder(ctx context.Context, token string, lines []models.OrderLine) (*models.Order, error) {
	var order models.Order
	if err := ac.do(ctx, token, http.MethodPost, "/orders", createOrderRequest{Items: lines}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// TransitionOrder requests checkout or cancel of a pending order.
func (ac *APIClient) TransitionOrder(ctx context.Context, token string, orderID uint, action models.Action) (*models.Order, error) {
	if _, ok := models.ParseOrderAction(string(action)); !ok {
		return nil, fmt.Errorf("unsupported order action %q", action)
	}

	var order models.Order
	path := fmt.Sprintf("/orders/%d/%s", orderID, action)
	if err := ac.do(ctx, token, http.MethodPost, path, struct{}{}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (ac *APIClient) ListPaymentMethods(ctx context.Context, token string) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := ac.do(ctx, token, http.MethodGet, "/payment-methods", nil, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

type paymentMethodUpdate struct {
	Type string `json:"type"`
}

// UpdatePaymentMethod replaces the method's type with whatever the operator
// typed. The value is not validated here.
func (ac *APIClient) UpdatePaymentMethod(ctx context.Context, token string, id uint, methodType string) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	path := fmt.Sprintf("/payment-methods/%d", id)
	if err := ac.do(ctx, token, http.MethodPut, path, paymentMethodUpdate{Type: methodType}, &method); err != nil {
		return nil, err
	}
	return &method, nil
}

func (ac *APIClient) do(ctx context.Context, token, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, ac.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	return ac.send(req, out)
}

func (ac *APIClient) send(req *http.Request, out interface{}) error {
	start := time.Now()
	resp, err := ac.httpClient.Do(req)
	if err != nil {
		utils.ErrorLogger.Errorf("api %s %s failed: %v", req.Method, req.URL.Path, err)
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	utils.InfoLogger.Debugf("api %s %s -> %d (%v)", req.Method, req.URL.Path, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", ErrNetwork, req.Method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", ErrNetwork, req.Method, req.URL.Path, err)
	}
	return nil
}

// parseDetail pulls the human readable message out of an error body. The API
// uses {"detail": "..."}; validation errors carry a list instead.
func parseDetail(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
