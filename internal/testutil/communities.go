package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/features/community/models"
	"ops-admin-backend/internal/features/community/repository"
)

// CommunityRepository is an in-memory repository.CommunityRepository.
type CommunityRepository struct {
	mu          sync.Mutex
	communities []*models.Community
}

func NewCommunityRepository(communities ...*models.Community) *CommunityRepository {
	return &CommunityRepository{communities: communities}
}

// Community builds an active community created at the given offset from now.
func Community(handle string, age time.Duration, category ...string) *models.Community {
	created := time.Now().UTC().Add(-age)
	if category == nil {
		category = []string{}
	}
	return &models.Community{
		ID:        "c-" + handle,
		Name:      handle,
		Handle:    handle,
		Status:    "active",
		Category:  category,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func (r *CommunityRepository) List(_ context.Context, filter models.Filter, page response.PageParams) ([]*models.Community, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.Community
	for _, c := range r.communities {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Category != "" && !contains(c.Category, filter.Category) {
			continue
		}
		if filter.Search != "" && !containsFold(filter.Search, c.Name, c.Handle, deref(c.Description)) {
			continue
		}
		cp := *c
		matched = append(matched, &cp)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	return paginate(matched, page), len(matched), nil
}

func (r *CommunityRepository) SetCertification(_ context.Context, handle string, certified bool) (*models.Community, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.communities {
		if c.Handle == handle {
			c.Certification = certified
			c.UpdatedAt = time.Now().UTC()
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrCommunityNotFound
}

func paginate[T any](items []T, page response.PageParams) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsFold(term string, fields ...string) bool {
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
