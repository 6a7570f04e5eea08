package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Client talks to the HTTP API of either service
type Client struct {
	apiURL     string
	httpClient *http.Client
	logger     zerolog.Logger
}

func (c *Client) LoggerComponent() string {
	return "API.Client"
}

func NewClient(apiURL string, opts ...ClientOption) *Client {
	c := &Client{
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		httpClient: http.DefaultClient,
		logger:     log.Logger,
	}

	for _, o := range opts {
		o(c)
	}

	c.logger = c.logger.With().Str("component", c.LoggerComponent()).Logger()

	return c
}

type ClientOption func(*Client)

func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

type RemoteError struct {
	ResponseBody string
	StatusCode   int
}

func NewRemoteError(responseBody string, statusCode int) *RemoteError {
	return &RemoteError{ResponseBody: responseBody, StatusCode: statusCode}
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.ResponseBody)
}

func (c *Client) CreateAccount(ctx context.Context, userID string) (*AccountResponse, error) {
	out := &AccountResponse{}
	if err := c.genericCall(ctx, userID, http.MethodPost, "/api/accounts", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*DepositResponse, error) {
	out := &DepositResponse{}
	if err := c.genericCall(ctx, userID, http.MethodPost, "/api/accounts/deposit", &DepositRequest{Amount: &amount}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Balance(ctx context.Context, userID string) (*BalanceResponse, error) {
	out := &BalanceResponse{}
	if err := c.genericCall(ctx, userID, http.MethodGet, "/api/accounts/balance", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Transactions(ctx context.Context, userID string) ([]TransactionResponse, error) {
	var out []TransactionResponse
	if err := c.genericCall(ctx, userID, http.MethodGet, "/api/accounts/transactions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, userID string, amount decimal.Decimal, description string) (*OrderResponse, error) {
	out := &OrderResponse{}
	in := &CreateOrderRequest{Amount: &amount, Description: description}
	if err := c.genericCall(ctx, userID, http.MethodPost, "/api/orders", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Order(ctx context.Context, userID string, id uuid.UUID) (*OrderResponse, error) {
	out := &OrderResponse{}
	if err := c.genericCall(ctx, userID, http.MethodGet, "/api/orders/"+id.String(), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Orders(ctx context.Context, userID string) ([]OrderResponse, error) {
	var out []OrderResponse
	if err := c.genericCall(ctx, userID, http.MethodGet, "/api/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) genericCall(ctx context.Context, userID, method, endpoint string, in interface{}, out interface{}) error {
	l := c.logger.With().Str("http_method", method).Str("endpoint", endpoint).Logger()
	ctx = l.WithContext(ctx)

	res, err := c.request(ctx, userID, method, endpoint, in)
	if err != nil {
		l.Error().Err(err).Msg("Service request failed")
		return fmt.Errorf("request: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode >= 400 {
		resBody := readString(res.Body)
		l.Debug().
			Int("http_status", res.StatusCode).
			Str("http_body", resBody).
			Msg("Service responded with error")
		return NewRemoteError(resBody, res.StatusCode)
	}

	if err := readJSON(res.Body, out); err != nil {
		return fmt.Errorf("body read: %w", err)
	}

	return nil
}

func (c *Client) request(ctx context.Context, userID, method, endpoint string, bodyParams interface{}) (*http.Response, error) {
	fullURL := c.apiURL + endpoint
	l := zerolog.Ctx(ctx).With().Str("url", fullURL).Logger()

	var body io.Reader
	if bodyParams != nil {
		rawJSON, err := json.Marshal(bodyParams)
		if err != nil {
			return nil, fmt.Errorf("json encode: %w", err)
		}
		body = bytes.NewReader(rawJSON)
		l.Debug().Str("request_body", string(rawJSON)).Msg("Doing request")
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(HeaderUserID, userID)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	return res, nil
}
