package models

import "time"

// Community is a registered community with its creator summary.
// @Description Community record
type Community struct {
	ID            string    `json:"id"`
	UserID        *string   `json:"user_id"`
	Name          string    `json:"name" example:"TON Builders"`
	Handle        string    `json:"handle" example:"tonbuilders"`
	Logo          *string   `json:"logo"`
	Certification bool      `json:"certification"`
	Status        string    `json:"status" example:"active"`
	Category      []string  `json:"category"`
	Region        *string   `json:"region"`
	AppHandle     *string   `json:"app_handle"`
	AppID         *string   `json:"app_id"`
	TgBot         *string   `json:"tg_bot"`
	TgChannel     *string   `json:"tg_channel"`
	TgGroup       *string   `json:"tg_group"`
	TgHandle      *string   `json:"tg_handle"`
	Twitter       *string   `json:"twitter"`
	Description   *string   `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Creator       *Creator  `json:"creator"`
}

// Creator is the public summary of the user who created a community.
type Creator struct {
	ID                 string    `json:"id"`
	FirstName          *string   `json:"first_name"`
	LastName           *string   `json:"last_name"`
	NickName           *string   `json:"nick_name"`
	Avatar             *string   `json:"avatar"`
	Email              *string   `json:"email"`
	Handler            string    `json:"handler"`
	IsCertifiedAccount bool      `json:"is_certified_account"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Filter narrows a community listing. Empty fields do not filter.
type Filter struct {
	Status   string
	Category string
	Search   string
}

// CertificationRequest is the body of PATCH /community.
type CertificationRequest struct {
	Handle        string `json:"handle" binding:"required,notblank" example:"tonbuilders"`
	Certification *bool  `json:"certification" binding:"required" example:"true"`
}
