package client

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

	"github.com/dmitrijs2005/hwidgate/internal/client/models"
	"github.com/dmitrijs2005/hwidgate/internal/logging"
)

const maxBodySize = 1 << 20

// HTTPClient talks to the remote auth service over HTTP/JSON. Every call is a
// single attempt; there are no retries.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for baseURL. A zero timeout leaves requests
// bounded only by the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type hwidBody struct {
	HWID string `json:"hwid"`
}

type checkoutRequest struct {
	Months int `json:"months"`
}

type banRequest struct {
	UserID any `json:"userId"`
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", credentialsRequest{username, password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", credentialsRequest{username, password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetHWID(ctx context.Context, token string) (string, error) {
	var resp hwidBody
	if err := c.do(ctx, http.MethodGet, "/auth/hwid", token, nil, &resp); err != nil {
		return "", err
	}
	return resp.HWID, nil
}

func (c *HTTPClient) RegisterHWID(ctx context.Context, token, hwid string) error {
	return c.do(ctx, http.MethodPost, "/auth/register-hwid", token, hwidBody{HWID: hwid}, nil)
}

func (c *HTTPClient) Profile(ctx context.Context, token string) (models.Fields, error) {
	return c.fields(ctx, http.MethodGet, "/auth/profile", token, nil)
}

func (c *HTTPClient) CheckSubscription(ctx context.Context, token string) (models.Fields, error) {
	return c.fields(ctx, http.MethodGet, "/auth/check-subscription", token, nil)
}

func (c *HTTPClient) IsSubscribed(ctx context.Context, token string) (models.Fields, error) {
	return c.fields(ctx, http.MethodGet, "/auth/is-subscribed", token, nil)
}

func (c *HTTPClient) BanStatus(ctx context.Context, token string) (models.Fields, error) {
	return c.fields(ctx, http.MethodGet, "/auth/is-banned", token, nil)
}

// Ban sends the user id taken from the unverified token payload.
func (c *HTTPClient) Ban(ctx context.Context, token string) error {
	userID, err := UserIDFromToken(token)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/auth/ban", token, banRequest{UserID: userID}, nil)
}

func (c *HTTPClient) CreateCheckout(ctx context.Context, token string, months int) (models.Fields, error) {
	return c.fields(ctx, http.MethodPost, "/auth/create-checkout", token, checkoutRequest{Months: months})
}

func (c *HTTPClient) PaymentSuccess(ctx context.Context, sessionID string) (models.Fields, error) {
	return c.fields(ctx, http.MethodGet, "/auth/payment/success?session_id="+url.QueryEscape(sessionID), "", nil)
}

func (c *HTTPClient) PaymentCancel(ctx context.Context) (models.Fields, error) {
	return c.fields(ctx, http.MethodGet, "/auth/payment/cancel", "", nil)
}

func (c *HTTPClient) fields(ctx context.Context, method, path, token string, in any) (models.Fields, error) {
	out := models.Fields{}
	if err := c.do(ctx, method, path, token, in, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do sends one request. Non-2xx answers become *APIError, transport failures
// wrap ErrUnavailable, and a 2xx answer with an empty or null body is
// ErrEmptyResponse when a result is expected.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug(ctx, "api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read %s %s response: %v", ErrUnavailable, method, path, err)
	}

	c.log.Debug(ctx, "api response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
