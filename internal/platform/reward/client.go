package reward

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ops-admin-backend/internal/common/logger"
)

const headerAdmin = "x-admin"

// maximum upstream body kept in error messages
const maxErrorBody = 512

type Options struct {
	BaseURL    string
	AdminToken string
	AssetPath  string
	PointsPath string
	Timeout    time.Duration
}

// Client talks to the external reward service that credits assets and points to
// Telegram handles.
type Client struct {
	httpClient *http.Client
	opts       Options
}

func NewClient(opts Options) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		opts:       opts,
	}
}

// SendRequest is one external distribution call.
type SendRequest struct {
	Handles         []string
	AssetID         string
	Amount          decimal.Decimal
	FlowName        string
	FlowDescription string
	Sender          string
}

// SendResult is the reconciliation payload returned by the reward service. Fields the
// service adds beyond the three handle sets are preserved in Extra.
type SendResult struct {
	FoundUserHandles    []string                   `json:"foundUserHandles"`
	NotFoundUserHandles []string                   `json:"notFoundUserHandles"`
	SuccessHandles      []string                   `json:"successHandles"`
	Extra               map[string]json.RawMessage `json:"extra,omitempty"`
}

// UpstreamError is returned for a non-2xx status or a non-zero envelope code.
type UpstreamError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("reward service error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("reward service error (status %d): %s", e.StatusCode, e.Message)
}

type assetPayload struct {
	TelegramHandles []string    `json:"telegramHandles"`
	AssetID         string      `json:"assetId"`
	Amount          json.Number `json:"amount"`
	FlowName        string      `json:"flowName"`
	FlowDescription string      `json:"flowDescription"`
	Sender          string      `json:"sender"`
}

// points transfers carry no asset id
type pointsPayload struct {
	TelegramHandles []string    `json:"telegramHandles"`
	Amount          json.Number `json:"amount"`
	FlowName        string      `json:"flowName"`
	FlowDescription string      `json:"flowDescription"`
	Sender          string      `json:"sender"`
}

type envelope struct {
	Code    *int            `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// SendAsset credits an asset to every handle in one call.
func (c *Client) SendAsset(ctx context.Context, req SendRequest) (*SendResult, error) {
	if req.AssetID == "" {
		return nil, fmt.Errorf("asset id is required")
	}
	payload := assetPayload{
		TelegramHandles: req.Handles,
		AssetID:         req.AssetID,
		Amount:          json.Number(req.Amount.String()),
		FlowName:        req.FlowName,
		FlowDescription: req.FlowDescription,
		Sender:          req.Sender,
	}
	return c.send(ctx, c.opts.AssetPath, payload)
}

// SendPoints credits points to every handle in one call.
func (c *Client) SendPoints(ctx context.Context, req SendRequest) (*SendResult, error) {
	payload := pointsPayload{
		TelegramHandles: req.Handles,
		Amount:          json.Number(req.Amount.String()),
		FlowName:        req.FlowName,
		FlowDescription: req.FlowDescription,
		Sender:          req.Sender,
	}
	return c.send(ctx, c.opts.PointsPath, payload)
}

func (c *Client) send(ctx context.Context, path string, payload interface{}) (*SendResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	endpoint := strings.TrimRight(c.opts.BaseURL, "/") + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(headerAdmin, c.opts.AdminToken)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error().Err(err).Str("endpoint", path).Msg("Reward service request failed")
		return nil, fmt.Errorf("failed to call reward service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logger.Debug().
		Str("endpoint", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Reward service responded")

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = truncate(string(raw), maxErrorBody)
		}
		upErr := &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
		if decodeErr == nil && env.Code != nil {
			upErr.Code = *env.Code
		}
		return nil, upErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if env.Code != nil && *env.Code != 0 {
		msg := env.Message
		if msg == "" {
			msg = "request failed with non-zero code"
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Code: *env.Code, Message: msg}
	}

	return decodeResult(env.Data)
}

func decodeResult(data json.RawMessage) (*SendResult, error) {
	result := &SendResult{}
	if len(data) == 0 || string(data) == "null" {
		return result, nil
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode response data: %w", err)
	}

	known := map[string]*[]string{
		"foundUserHandles":    &result.FoundUserHandles,
		"notFoundUserHandles": &result.NotFoundUserHandles,
		"successHandles":      &result.SuccessHandles,
	}
	for key, value := range fields {
		dest, ok := known[key]
		if !ok {
			if result.Extra == nil {
				result.Extra = map[string]json.RawMessage{}
			}
			result.Extra[key] = value
			continue
		}
		if string(value) == "null" {
			continue
		}
		if err := json.Unmarshal(value, dest); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", key, err)
		}
	}
	return result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
