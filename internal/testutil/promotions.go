package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/features/promotion/models"
	"ops-admin-backend/internal/features/promotion/repository"
)

// PromotionRepository is an in-memory repository.PromotionRepository.
type PromotionRepository struct {
	mu         sync.Mutex
	promotions []*models.Promotion
}

func NewPromotionRepository(promotions ...*models.Promotion) *PromotionRepository {
	return &PromotionRepository{promotions: promotions}
}

// Promotion builds an active telegram promotion with the given ordering keys.
func Promotion(id string, priority, eventIndex int, age time.Duration) *models.Promotion {
	created := time.Now().UTC().Add(-age)
	return &models.Promotion{
		ID:         id,
		Title:      "promo " + id,
		Img:        "https://cdn.example.com/" + id + ".png",
		URL:        "https://example.com/" + id,
		Tag:        "event",
		Platform:   models.PlatformTelegram,
		Page:       "home",
		Priority:   priority,
		EventIndex: eventIndex,
		Status:     models.StatusActive,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

// Get returns a copy of the stored promotion, or nil.
func (r *PromotionRepository) Get(id string) *models.Promotion {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.promotions {
		if p.ID == id {
			cp := *p
			return &cp
		}
	}
	return nil
}

func (r *PromotionRepository) Create(_ context.Context, p *models.Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.promotions = append(r.promotions, &cp)
	return nil
}

func (r *PromotionRepository) GetByID(_ context.Context, id string) (*models.Promotion, error) {
	if p := r.Get(id); p != nil {
		return p, nil
	}
	return nil, repository.ErrPromotionNotFound
}

func (r *PromotionRepository) List(_ context.Context, filter models.Filter, page response.PageParams) ([]*models.Promotion, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.Promotion
	for _, p := range r.promotions {
		if filter.Status != "" {
			if p.Status != filter.Status {
				continue
			}
		} else if p.IsDeleted() {
			continue
		}
		if filter.Platform != "" && p.Platform != filter.Platform {
			continue
		}
		if filter.Page != "" && p.Page != filter.Page {
			continue
		}
		if filter.Search != "" && !containsFold(filter.Search, p.Title, p.Tag, p.URL) {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.EventIndex != b.EventIndex {
			return a.EventIndex < b.EventIndex
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	return paginate(matched, page), len(matched), nil
}

func (r *PromotionRepository) Update(_ context.Context, id string, req *models.UpdateRequest) (*models.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.promotions {
		if p.ID != id || p.IsDeleted() {
			continue
		}
		setIf(&p.Title, req.Title)
		setIf(&p.Img, req.Img)
		setIf(&p.URL, req.URL)
		setIf(&p.Tag, req.Tag)
		setIf(&p.Platform, req.Platform)
		setIf(&p.Page, req.Page)
		setIf(&p.Priority, req.Priority)
		setIf(&p.EventIndex, req.EventIndex)
		setIf(&p.Status, req.Status)
		p.UpdatedAt = time.Now().UTC()
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrPromotionNotFound
}

func (r *PromotionRepository) MarkDeleted(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.promotions {
		if p.ID == id && !p.IsDeleted() {
			p.Status = models.StatusDeleted
			p.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return repository.ErrPromotionNotFound
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
