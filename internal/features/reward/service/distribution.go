package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/logger"
	"ops-admin-backend/internal/common/validation"
	"ops-admin-backend/internal/features/reward/models"
	"ops-admin-backend/internal/features/reward/repository"
	"ops-admin-backend/internal/platform/reward"
)

const (
	DefaultSender = "admin"

	defaultHistoryTimeout = 10 * time.Second
)

// Sender performs the external transfer. *reward.Client implements it.
type Sender interface {
	SendAsset(ctx context.Context, req reward.SendRequest) (*reward.SendResult, error)
	SendPoints(ctx context.Context, req reward.SendRequest) (*reward.SendResult, error)
}

type DistributionService interface {
	Assets() []models.Asset
	Distribute(ctx context.Context, operator string, req *models.DistributeRequest) (*models.DistributeResult, error)
	DistributeBatch(ctx context.Context, operator string, req *models.BatchRequest) (*models.BatchResult, error)
}

type Options struct {
	// Concurrency bounds parallel batch groups; 1 runs them sequentially.
	Concurrency    int
	HistoryTimeout time.Duration
}

type distributionService struct {
	sender  Sender
	history repository.HistoryRepository
	catalog *Catalog
	opts    Options
}

func NewDistributionService(sender Sender, history repository.HistoryRepository, catalog *Catalog, opts Options) DistributionService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.HistoryTimeout <= 0 {
		opts.HistoryTimeout = defaultHistoryTimeout
	}
	return &distributionService{
		sender:  sender,
		history: history,
		catalog: catalog,
		opts:    opts,
	}
}

// attempt is one external call and the history record written for it.
type attempt struct {
	asset           models.Asset
	amount          decimal.Decimal
	flowName        string
	flowDescription string
	sender          string
	operator        string
	handles         []string
	userID          *string
	note            *string
}

func (s *distributionService) Assets() []models.Asset {
	return s.catalog.List()
}

func (s *distributionService) Distribute(ctx context.Context, operator string, req *models.DistributeRequest) (*models.DistributeResult, error) {
	handles := validation.NormalizeHandles(req.TelegramHandles)
	if len(handles) == 0 {
		return nil, apperrors.NewValidationError("telegramHandles", "at least one handle is required")
	}
	if err := checkHandles("telegramHandles", handles...); err != nil {
		return nil, err
	}
	asset, ok := s.catalog.Resolve(req.AssetType)
	if !ok {
		return nil, apperrors.NewValidationError("assetType", "unknown asset type")
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount", "must be greater than 0")
	}

	return s.run(ctx, attempt{
		asset:           asset,
		amount:          req.Amount,
		flowName:        strings.TrimSpace(req.FlowName),
		flowDescription: strings.TrimSpace(req.FlowDescription),
		sender:          senderOrDefault(req.Sender),
		operator:        operator,
		handles:         handles,
		note:            req.Note,
	}), nil
}

type batchGroup struct {
	attempt
	rows []int
}

// DistributeBatch validates every row before any external call, then issues one call
// per (asset, amount, flow name, flow description) group.
func (s *distributionService) DistributeBatch(ctx context.Context, operator string, req *models.BatchRequest) (*models.BatchResult, error) {
	sender := senderOrDefault(req.Sender)

	var groups []*batchGroup
	byKey := map[string]*batchGroup{}
	for i, row := range req.Rows {
		field := fmt.Sprintf("rows[%d]", i)
		handle := strings.TrimSpace(row.TgHandle)
		if err := checkHandles(field+".tgHandle", handle); err != nil {
			return nil, err
		}
		asset, ok := s.catalog.Resolve(row.AssetType)
		if !ok {
			return nil, apperrors.NewValidationError(field+".assetType", "unknown asset type")
		}
		if !row.Amount.IsPositive() {
			return nil, apperrors.NewValidationError(field+".amount", "must be greater than 0")
		}

		flowName := strings.TrimSpace(row.FlowName)
		flowDescription := strings.TrimSpace(row.FlowDescription)
		key := strings.Join([]string{asset.Type, row.Amount.String(), flowName, flowDescription}, "\x00")

		g, ok := byKey[key]
		if !ok {
			g = &batchGroup{attempt: attempt{
				asset:           asset,
				amount:          row.Amount,
				flowName:        flowName,
				flowDescription: flowDescription,
				sender:          sender,
				operator:        operator,
			}}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, i)
		g.handles = append(g.handles, handle)
	}

	for _, g := range groups {
		g.handles = validation.NormalizeHandles(g.handles)
		if len(g.rows) == 1 {
			g.userID = req.Rows[g.rows[0]].UserID
		}
	}

	results := make([]*models.DistributeResult, len(groups))
	var eg errgroup.Group
	eg.SetLimit(s.opts.Concurrency)
	for i, g := range groups {
		i, g := i, g
		eg.Go(func() error {
			results[i] = s.run(ctx, g.attempt)
			return nil
		})
	}
	_ = eg.Wait()

	out := &models.BatchResult{
		Rows:   make([]models.BatchRowResult, len(req.Rows)),
		Groups: results,
	}
	for i, g := range groups {
		result := results[i]
		success := newHandleSet(result.SuccessHandles)
		notFound := newHandleSet(result.NotFoundUserHandles)
		for _, idx := range g.rows {
			row := req.Rows[idx]
			rr := models.BatchRowResult{ID: row.ID, TgHandle: strings.TrimSpace(row.TgHandle), Status: models.StatusFailed}
			switch {
			case result.Error != "":
				rr.Reason = models.ReasonUpstreamError
			case success.has(rr.TgHandle):
				rr.Status = models.StatusSuccess
			case notFound.has(rr.TgHandle):
				rr.Reason = models.ReasonNotFound
			default:
				rr.Reason = models.ReasonNotSent
			}
			if rr.Status == models.StatusSuccess {
				out.Succeeded++
			} else {
				out.Failed++
			}
			out.Rows[idx] = rr
		}
	}

	logger.Info().
		Str("operator", operator).
		Int("rows", len(req.Rows)).
		Int("groups", len(groups)).
		Int("succeeded", out.Succeeded).
		Int("failed", out.Failed).
		Msg("Batch reward distribution finished")

	return out, nil
}

// run performs one external call. The history record is written in a deferred call so
// that it is persisted whatever the call outcome.
func (s *distributionService) run(ctx context.Context, a attempt) (result *models.DistributeResult) {
	result = &models.DistributeResult{
		Status:              models.StatusFailed,
		AssetType:           a.asset.Type,
		AssetID:             a.asset.AssetID,
		Amount:              a.amount,
		RequestedHandles:    a.handles,
		FoundUserHandles:    []string{},
		NotFoundUserHandles: []string{},
		SuccessHandles:      []string{},
	}
	defer func() {
		s.record(ctx, a, result)
	}()

	req := reward.SendRequest{
		Handles:         a.handles,
		AssetID:         a.asset.AssetID,
		Amount:          a.amount,
		FlowName:        a.flowName,
		FlowDescription: a.flowDescription,
		Sender:          a.sender,
	}

	var sent *reward.SendResult
	var err error
	if a.asset.Points {
		sent, err = s.sender.SendPoints(ctx, req)
	} else {
		sent, err = s.sender.SendAsset(ctx, req)
	}
	if err != nil {
		result.Error = err.Error()
		logger.Warn().
			Err(err).
			Str("asset_type", a.asset.Type).
			Int("handles", len(a.handles)).
			Msg("Reward distribution failed")
		return result
	}

	rec := Reconcile(a.handles, sent.FoundUserHandles, sent.NotFoundUserHandles, sent.SuccessHandles)
	result.FoundUserHandles = rec.Found
	result.NotFoundUserHandles = rec.NotFound
	result.SuccessHandles = rec.Success
	result.FailedFoundCount = rec.FailedFoundCount
	result.Warnings = rec.Warnings
	result.Passthrough = sent.Extra
	if len(rec.Success) > 0 {
		result.Status = models.StatusSuccess
	}

	if len(rec.Warnings) > 0 {
		logger.Warn().
			Strs("warnings", rec.Warnings).
			Str("asset_type", a.asset.Type).
			Msg("Reward service response failed integrity checks")
	}
	return result
}

// record persists the attempt on a context detached from the request so that a cancelled
// request still leaves its history behind.
func (s *distributionService) record(parent context.Context, a attempt, result *models.DistributeResult) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), s.opts.HistoryTimeout)
	defer cancel()

	rec := &models.RewardDistributionRecord{
		ID:                  uuid.New().String(),
		UserID:              a.userID,
		AssetType:           a.asset.Type,
		Amount:              a.amount,
		Status:              result.Status,
		Operator:            a.operator,
		FlowName:            a.flowName,
		FlowDescription:     a.flowDescription,
		Note:                summarize(a, result),
		FoundUserHandles:    result.FoundUserHandles,
		NotFoundUserHandles: result.NotFoundUserHandles,
		SuccessHandles:      result.SuccessHandles,
		Timestamp:           time.Now().UTC(),
	}
	if len(a.handles) > 0 {
		handles := strings.Join(a.handles, ",")
		rec.TgHandle = &handles
	}
	if a.asset.AssetID != "" {
		assetID := a.asset.AssetID
		rec.AssetID = &assetID
	}
	if result.Error != "" {
		msg := result.Error
		rec.ErrorMessage = &msg
	}

	if err := s.history.Create(ctx, rec); err != nil {
		logger.Error().
			Err(err).
			Str("status", result.Status).
			Str("asset_type", a.asset.Type).
			Msg("Failed to write reward history")
		result.Warnings = append(result.Warnings, "history record was not saved")
		return
	}
	result.HistoryID = rec.ID
}

func summarize(a attempt, result *models.DistributeResult) *string {
	summary := fmt.Sprintf("requested %d, found %d, not found %d, succeeded %d",
		len(a.handles), len(result.FoundUserHandles), len(result.NotFoundUserHandles), len(result.SuccessHandles))
	if a.note != nil && strings.TrimSpace(*a.note) != "" {
		summary = strings.TrimSpace(*a.note) + "; " + summary
	}
	return &summary
}

func checkHandles(field string, handles ...string) error {
	for _, h := range handles {
		if !validation.IsTelegramHandle(h) {
			return apperrors.NewValidationError(field, fmt.Sprintf("invalid telegram handle %q", h))
		}
	}
	return nil
}

func senderOrDefault(sender string) string {
	if s := strings.TrimSpace(sender); s != "" {
		return s
	}
	return DefaultSender
}
