package reward

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	path    string
	admin   string
	payload map[string]interface{}
}

func newServer(t *testing.T, status int, body string, got *captured) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got.path = r.URL.Path
		got.admin = r.Header.Get("x-admin")
		_ = json.Unmarshal(raw, &got.payload)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewClient(Options{
		BaseURL:    srv.URL + "/",
		AdminToken: "admin-secret",
		AssetPath:  "/api/v1/user/asset/sendByTelegramHandle",
		PointsPath: "/api/v1/user/point/sendByTelegramHandle",
		Timeout:    5 * time.Second,
	})
}

func sampleRequest() SendRequest {
	return SendRequest{
		Handles:         []string{"@a", "@b"},
		AssetID:         "663cbd6c515cf0d9f9d93e14",
		Amount:          decimal.RequireFromString("5.5"),
		FlowName:        "campaign",
		FlowDescription: "weekly",
		Sender:          "admin",
	}
}

func TestSendAsset(t *testing.T) {
	var got captured
	c := newServer(t, http.StatusOK, `{
		"code": 0,
		"message": "ok",
		"data": {
			"foundUserHandles": ["@a", "@b"],
			"notFoundUserHandles": [],
			"successHandles": ["@a"],
			"batchId": "b-1"
		}
	}`, &got)

	res, err := c.SendAsset(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/user/asset/sendByTelegramHandle", got.path)
	assert.Equal(t, "admin-secret", got.admin)
	assert.Equal(t, "663cbd6c515cf0d9f9d93e14", got.payload["assetId"])
	assert.Equal(t, 5.5, got.payload["amount"])
	assert.Equal(t, []interface{}{"@a", "@b"}, got.payload["telegramHandles"])

	assert.Equal(t, []string{"@a", "@b"}, res.FoundUserHandles)
	assert.Empty(t, res.NotFoundUserHandles)
	assert.Equal(t, []string{"@a"}, res.SuccessHandles)
	assert.JSONEq(t, `"b-1"`, string(res.Extra["batchId"]))
}

func TestSendPoints_OmitsAssetID(t *testing.T) {
	var got captured
	c := newServer(t, http.StatusOK, `{"code":0,"data":{"successHandles":["@a"]}}`, &got)

	req := sampleRequest()
	req.AssetID = "ignored"
	_, err := c.SendPoints(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/user/point/sendByTelegramHandle", got.path)
	_, hasAsset := got.payload["assetId"]
	assert.False(t, hasAsset)
}

func TestSendAsset_RequiresAssetID(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://127.0.0.1:0"})
	req := sampleRequest()
	req.AssetID = ""

	_, err := c.SendAsset(context.Background(), req)
	assert.Error(t, err)
}

func TestSend_Failures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		code   int
		msg    string
	}{
		{"non-zero code", http.StatusOK, `{"code":1001,"message":"insufficient balance"}`, 1001, "insufficient balance"},
		{"server error with envelope", http.StatusInternalServerError, `{"code":500,"message":"boom"}`, 500, "boom"},
		{"server error plain body", http.StatusBadGateway, `bad gateway`, 0, "bad gateway"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got captured
			c := newServer(t, tc.status, tc.body, &got)

			_, err := c.SendAsset(context.Background(), sampleRequest())

			var upErr *UpstreamError
			require.True(t, errors.As(err, &upErr))
			assert.Equal(t, tc.status, upErr.StatusCode)
			assert.Equal(t, tc.code, upErr.Code)
			assert.Equal(t, tc.msg, upErr.Message)
		})
	}
}

func TestSend_NullData(t *testing.T) {
	var got captured
	c := newServer(t, http.StatusOK, `{"code":0,"data":null}`, &got)

	res, err := c.SendAsset(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Empty(t, res.FoundUserHandles)
	assert.Empty(t, res.SuccessHandles)
}
