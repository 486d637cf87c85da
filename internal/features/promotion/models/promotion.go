package models

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"

	PlatformLine     = "line"
	PlatformTelegram = "telegram"
	PlatformWeb      = "web"

	DefaultPriority   = 1
	DefaultEventIndex = 0
)

// Promotion is a promotional banner shown on a platform page.
// @Description Promotion record
type Promotion struct {
	ID         string    `json:"id"`
	Title      string    `json:"title" example:"Summer campaign"`
	Img        string    `json:"img" example:"https://cdn.example.com/banner.png"`
	URL        string    `json:"url" example:"https://example.com/summer"`
	Tag        string    `json:"tag" example:"event"`
	Platform   string    `json:"platform" example:"telegram" enums:"line,telegram,web"`
	Page       string    `json:"page" example:"home"`
	Priority   int       `json:"priority" example:"1"`
	EventIndex int       `json:"eventIndex" example:"0"`
	Status     string    `json:"status" example:"active" enums:"active,inactive,deleted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p *Promotion) IsDeleted() bool {
	return p.Status == StatusDeleted
}

// Filter narrows a promotion listing. An empty Status hides deleted promotions.
type Filter struct {
	Status   string
	Platform string
	Page     string
	Search   string
}

// CreateRequest is the body of POST /promotion.
type CreateRequest struct {
	Title      string `json:"title" binding:"required,notblank,max=200"`
	Img        string `json:"img" binding:"required,notblank"`
	URL        string `json:"url" binding:"required,notblank"`
	Tag        string `json:"tag" binding:"required,notblank"`
	Platform   string `json:"platform" binding:"required,oneof=line telegram web"`
	Page       string `json:"page" binding:"required,notblank"`
	Priority   *int   `json:"priority" binding:"omitempty,gte=0"`
	EventIndex *int   `json:"eventIndex" binding:"omitempty,gte=0"`
	Status     string `json:"status" binding:"omitempty,oneof=active inactive deleted"`
}

// UpdateRequest is the body of PUT /promotion. Absent fields are left untouched.
type UpdateRequest struct {
	ID         string  `json:"id" binding:"required,notblank"`
	Title      *string `json:"title" binding:"omitempty,notblank,max=200"`
	Img        *string `json:"img" binding:"omitempty,notblank"`
	URL        *string `json:"url" binding:"omitempty,notblank"`
	Tag        *string `json:"tag" binding:"omitempty,notblank"`
	Platform   *string `json:"platform" binding:"omitempty,oneof=line telegram web"`
	Page       *string `json:"page" binding:"omitempty,notblank"`
	Priority   *int    `json:"priority" binding:"omitempty,gte=0"`
	EventIndex *int    `json:"eventIndex" binding:"omitempty,gte=0"`
	Status     *string `json:"status" binding:"omitempty,oneof=active inactive deleted"`
}
