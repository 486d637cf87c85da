package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/features/reward/models"
	"ops-admin-backend/internal/platform/reward"
	"ops-admin-backend/internal/testutil"
)

func newDistribution(sender *testutil.RewardSender, concurrency int) (DistributionService, *testutil.HistoryRepository) {
	history := testutil.NewHistoryRepository()
	catalog := NewCatalog(map[string]string{"ton": "1005", "usdt": "663c"})
	return NewDistributionService(sender, history, catalog, Options{Concurrency: concurrency}), history
}

func distributeReq(assetType string, handles ...string) *models.DistributeRequest {
	return &models.DistributeRequest{
		TelegramHandles: handles,
		AssetType:       assetType,
		Amount:          decimal.NewFromInt(10),
		FlowName:        "campaign",
		FlowDescription: "october drop",
	}
}

func TestDistribute_PartialSuccess(t *testing.T) {
	sender := &testutil.RewardSender{Respond: func(testutil.SentCall) (*reward.SendResult, error) {
		return &reward.SendResult{
			FoundUserHandles:    []string{"@a", "@b"},
			NotFoundUserHandles: []string{},
			SuccessHandles:      []string{"@a"},
		}, nil
	}}
	svc, history := newDistribution(sender, 1)

	result, err := svc.Distribute(context.Background(), "admin-1", distributeReq("ton", "@a", "@b"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.Equal(t, 1, result.FailedFoundCount)
	assert.Empty(t, result.Warnings)
	assert.NotEmpty(t, result.HistoryID)

	records := history.Records()
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, models.StatusSuccess, rec.Status)
	assert.Equal(t, []string{"@a", "@b"}, rec.FoundUserHandles)
	assert.Equal(t, []string{"@a"}, rec.SuccessHandles)
	assert.Equal(t, "admin-1", rec.Operator)
	assert.Equal(t, "1005", *rec.AssetID)
	assert.Nil(t, rec.ErrorMessage)
}

func TestDistribute_NormalizesHandles(t *testing.T) {
	sender := &testutil.RewardSender{}
	svc, _ := newDistribution(sender, 1)

	_, err := svc.Distribute(context.Background(), "admin", distributeReq("ton", " @a ", "", "@a", "@b"))
	require.NoError(t, err)

	calls := sender.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"@a", "@b"}, calls[0].Request.Handles)
	assert.Equal(t, DefaultSender, calls[0].Request.Sender)
}

func TestDistribute_PointsRouting(t *testing.T) {
	sender := &testutil.RewardSender{}
	svc, history := newDistribution(sender, 1)

	_, err := svc.Distribute(context.Background(), "admin", distributeReq("points", "@a"))
	require.NoError(t, err)

	calls := sender.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Points)
	assert.Empty(t, calls[0].Request.AssetID)
	assert.Nil(t, history.Records()[0].AssetID)
}

func TestDistribute_UpstreamFailureStillRecords(t *testing.T) {
	sender := &testutil.RewardSender{Respond: func(testutil.SentCall) (*reward.SendResult, error) {
		return nil, &reward.UpstreamError{StatusCode: 502, Message: "bad gateway"}
	}}
	svc, history := newDistribution(sender, 1)

	result, err := svc.Distribute(context.Background(), "admin", distributeReq("usdt", "@a"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, result.Status)
	assert.Contains(t, result.Error, "bad gateway")

	records := history.Records()
	require.Len(t, records, 1)
	assert.Equal(t, models.StatusFailed, records[0].Status)
	require.NotNil(t, records[0].ErrorMessage)
	assert.Contains(t, *records[0].ErrorMessage, "bad gateway")
	assert.Empty(t, records[0].SuccessHandles)
}

func TestDistribute_NobodyCreditedIsFailed(t *testing.T) {
	sender := &testutil.RewardSender{Respond: testutil.KnownHandles()}
	svc, history := newDistribution(sender, 1)

	result, err := svc.Distribute(context.Background(), "admin", distributeReq("ton", "@ghost"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, result.Status)
	assert.Equal(t, []string{"@ghost"}, result.NotFoundUserHandles)
	assert.Equal(t, models.StatusFailed, history.Records()[0].Status)
}

func TestDistribute_CancelledRequestStillRecords(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sender := &testutil.RewardSender{Respond: func(testutil.SentCall) (*reward.SendResult, error) {
		cancel()
		return nil, context.Canceled
	}}
	svc, history := newDistribution(sender, 1)

	result, err := svc.Distribute(ctx, "admin", distributeReq("ton", "@a"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, result.Status)
	assert.Len(t, history.Records(), 1)
}

func TestDistribute_HistoryFailureIsReported(t *testing.T) {
	svc, history := newDistribution(&testutil.RewardSender{}, 1)
	history.FailCreate = true

	result, err := svc.Distribute(context.Background(), "admin", distributeReq("ton", "@a"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.Empty(t, result.HistoryID)
	assert.Contains(t, result.Warnings, "history record was not saved")
}

func TestDistribute_Validation(t *testing.T) {
	svc, history := newDistribution(&testutil.RewardSender{}, 1)

	zero := distributeReq("ton", "@a")
	zero.Amount = decimal.Zero

	cases := map[string]*models.DistributeRequest{
		"no handles":    distributeReq("ton", " ", ""),
		"bad handle":    distributeReq("ton", "not a handle!"),
		"unknown asset": distributeReq("doge", "@a"),
		"non-positive":  zero,
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Distribute(context.Background(), "admin", req)
			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		})
	}
	assert.Empty(t, history.Records())
}

func row(id, handle, assetType string, amount int64) models.BatchRow {
	return models.BatchRow{
		ID:              id,
		TgHandle:        handle,
		AssetType:       assetType,
		Amount:          decimal.NewFromInt(amount),
		FlowName:        "campaign",
		FlowDescription: "october drop",
	}
}

func TestDistributeBatch_GroupsAndRedistributes(t *testing.T) {
	sender := &testutil.RewardSender{Respond: func(call testutil.SentCall) (*reward.SendResult, error) {
		if call.Points {
			return nil, errors.New("points service down")
		}
		return testutil.KnownHandles("@a", "@c")(call)
	}}
	svc, history := newDistribution(sender, 1)

	result, err := svc.DistributeBatch(context.Background(), "admin", &models.BatchRequest{Rows: []models.BatchRow{
		row("1", "@a", "ton", 5),
		row("2", "@b", "ton", 5),
		row("3", "@c", "TON", 5),
		row("4", "@d", "points", 100),
		row("5", "@a", "usdt", 5),
	}})
	require.NoError(t, err)

	calls := sender.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, []string{"@a", "@b", "@c"}, calls[0].Request.Handles)
	assert.True(t, calls[1].Points)
	assert.Equal(t, "663c", calls[2].Request.AssetID)

	assert.Equal(t, []models.BatchRowResult{
		{ID: "1", TgHandle: "@a", Status: models.StatusSuccess},
		{ID: "2", TgHandle: "@b", Status: models.StatusFailed, Reason: models.ReasonNotFound},
		{ID: "3", TgHandle: "@c", Status: models.StatusSuccess},
		{ID: "4", TgHandle: "@d", Status: models.StatusFailed, Reason: models.ReasonUpstreamError},
		{ID: "5", TgHandle: "@a", Status: models.StatusSuccess},
	}, result.Rows)
	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Groups, 3)

	records := history.Records()
	require.Len(t, records, 3)
	statuses := map[string]string{}
	for _, rec := range records {
		statuses[rec.AssetType] = rec.Status
	}
	assert.Equal(t, map[string]string{"ton": "success", "points": "failed", "usdt": "success"}, statuses)
}

func TestDistributeBatch_SplitsByAmountAndFlow(t *testing.T) {
	sender := &testutil.RewardSender{}
	svc, history := newDistribution(sender, 1)

	other := row("3", "@c", "ton", 5)
	other.FlowName = "other"

	_, err := svc.DistributeBatch(context.Background(), "admin", &models.BatchRequest{Rows: []models.BatchRow{
		row("1", "@a", "ton", 5),
		row("2", "@b", "ton", 7),
		other,
	}})
	require.NoError(t, err)
	assert.Len(t, sender.Calls(), 3)
	assert.Len(t, history.Records(), 3)
}

func TestDistributeBatch_FoundButNotCredited(t *testing.T) {
	sender := &testutil.RewardSender{Respond: func(testutil.SentCall) (*reward.SendResult, error) {
		return &reward.SendResult{FoundUserHandles: []string{"@a"}, SuccessHandles: []string{}}, nil
	}}
	svc, _ := newDistribution(sender, 1)

	result, err := svc.DistributeBatch(context.Background(), "admin", &models.BatchRequest{Rows: []models.BatchRow{
		row("1", "@a", "ton", 5),
	}})
	require.NoError(t, err)
	assert.Equal(t, models.ReasonNotSent, result.Rows[0].Reason)
	assert.Equal(t, 1, result.Groups[0].FailedFoundCount)
}

func TestDistributeBatch_RejectsBeforeSending(t *testing.T) {
	sender := &testutil.RewardSender{}
	svc, _ := newDistribution(sender, 1)

	_, err := svc.DistributeBatch(context.Background(), "admin", &models.BatchRequest{Rows: []models.BatchRow{
		row("1", "@a", "ton", 5),
		row("2", "@b", "doge", 5),
	}})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "rows[1].assetType", appErr.Details["field"])
	assert.Empty(t, sender.Calls())
}

func TestDistributeBatch_RunsGroupsConcurrently(t *testing.T) {
	var inFlight, peak int32
	sender := &testutil.RewardSender{Respond: func(call testutil.SentCall) (*reward.SendResult, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return testutil.KnownHandles(call.Request.Handles...)(call)
	}}
	svc, history := newDistribution(sender, 4)

	var rows []models.BatchRow
	for i := int64(1); i <= 4; i++ {
		rows = append(rows, row(decimal.NewFromInt(i).String(), "@a", "ton", i))
	}
	result, err := svc.DistributeBatch(context.Background(), "admin", &models.BatchRequest{Rows: rows})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Succeeded)
	assert.Len(t, history.Records(), 4)
	assert.Greater(t, atomic.LoadInt32(&peak), int32(1))
}
