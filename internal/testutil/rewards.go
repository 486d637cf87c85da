package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/features/reward/models"
	"ops-admin-backend/internal/platform/reward"
)

// HistoryRepository is an in-memory repository.HistoryRepository.
type HistoryRepository struct {
	mu      sync.Mutex
	records []*models.RewardDistributionRecord
	// FailCreate makes every Create return an error.
	FailCreate bool
}

func NewHistoryRepository(records ...*models.RewardDistributionRecord) *HistoryRepository {
	return &HistoryRepository{records: records}
}

// Records returns the stored records in insertion order.
func (r *HistoryRepository) Records() []models.RewardDistributionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.RewardDistributionRecord, len(r.records))
	for i, rec := range r.records {
		out[i] = *rec
	}
	return out
}

func (r *HistoryRepository) Create(_ context.Context, rec *models.RewardDistributionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreate {
		return errors.New("history store unavailable")
	}
	cp := *rec
	r.records = append(r.records, &cp)
	return nil
}

func (r *HistoryRepository) List(_ context.Context, filter models.HistoryFilter, page response.PageParams) ([]*models.RewardDistributionRecord, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.RewardDistributionRecord
	for _, rec := range r.records {
		if filter.UserIdentifier != "" && !containsFold(filter.UserIdentifier, deref(rec.UserID), deref(rec.TgHandle)) {
			continue
		}
		if filter.AssetType != "" && rec.AssetType != filter.AssetType {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		cp := *rec
		matched = append(matched, &cp)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Timestamp.After(matched[j].Timestamp) })

	return paginate(matched, page), len(matched), nil
}

// SentCall is one call received by RewardSender.
type SentCall struct {
	Points  bool
	Request reward.SendRequest
}

// RewardSender is a scripted reward service. By default every requested handle is found
// and credited; Respond overrides that per call.
type RewardSender struct {
	mu      sync.Mutex
	calls   []SentCall
	Respond func(call SentCall) (*reward.SendResult, error)
}

func (s *RewardSender) SendAsset(_ context.Context, req reward.SendRequest) (*reward.SendResult, error) {
	return s.send(SentCall{Request: req})
}

func (s *RewardSender) SendPoints(_ context.Context, req reward.SendRequest) (*reward.SendResult, error) {
	return s.send(SentCall{Points: true, Request: req})
}

func (s *RewardSender) send(call SentCall) (*reward.SendResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	respond := s.Respond
	s.mu.Unlock()

	if respond != nil {
		return respond(call)
	}
	handles := append([]string{}, call.Request.Handles...)
	return &reward.SendResult{
		FoundUserHandles:    handles,
		NotFoundUserHandles: []string{},
		SuccessHandles:      handles,
	}, nil
}

// Calls returns the received calls in arrival order.
func (s *RewardSender) Calls() []SentCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentCall{}, s.calls...)
}

// KnownHandles answers like a reward service that only knows the given users; every
// known handle is credited.
func KnownHandles(known ...string) func(SentCall) (*reward.SendResult, error) {
	set := map[string]bool{}
	for _, h := range known {
		set[strings.TrimPrefix(h, "@")] = true
	}
	return func(call SentCall) (*reward.SendResult, error) {
		res := &reward.SendResult{FoundUserHandles: []string{}, NotFoundUserHandles: []string{}, SuccessHandles: []string{}}
		for _, h := range call.Request.Handles {
			if set[strings.TrimPrefix(h, "@")] {
				res.FoundUserHandles = append(res.FoundUserHandles, h)
				res.SuccessHandles = append(res.SuccessHandles, h)
			} else {
				res.NotFoundUserHandles = append(res.NotFoundUserHandles, h)
			}
		}
		return res, nil
	}
}
