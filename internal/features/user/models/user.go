package models

import (
	"encoding/json"
	"time"
)

const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// User is a dashboard user record.
// @Description Full user record
type User struct {
	ID                 string          `json:"id" example:"9c1f0a55-52a4-4a6a-8a7e-2c1c0e3b7d21"`
	AppID              *string         `json:"app_id"`
	AppHandle          *string         `json:"app_handle"`
	FromChannel        *string         `json:"from_channel"`
	RegisterMethod     *string         `json:"register_method"`
	FirstName          *string         `json:"first_name" example:"Alice"`
	LastName           *string         `json:"last_name"`
	Avatar             *string         `json:"avatar"`
	NickName           *string         `json:"nick_name"`
	Email              *string         `json:"email"`
	Description        *string         `json:"description"`
	InterestedTags     []string        `json:"interested_tags"`
	IP                 *string         `json:"ip"`
	CountryCode        *string         `json:"country_code"`
	BrowserLanguages   []string        `json:"browser_languages"`
	Language           *string         `json:"language"`
	IsBot              bool            `json:"is_bot"`
	Handler            string          `json:"handler" example:"alice"`
	IsCertifiedAccount bool            `json:"is_certified_account"`
	HumanVerify        bool            `json:"humanVerify"`
	LastLoginTime      *time.Time      `json:"last_login_time"`
	LineInfo           json.RawMessage `json:"line_info,omitempty" swaggertype:"object"`
	TelegramID         *int64          `json:"telegram_id,omitempty" example:"123456789"`
	Status             string          `json:"status" example:"active" enums:"active,deleted"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func (u *User) IsDeleted() bool {
	return u.Status == StatusDeleted
}

// RegisterRequest is the body of POST /user.
type RegisterRequest struct {
	AppID              string          `json:"app_id" binding:"required,notblank"`
	AppHandle          *string         `json:"app_handle"`
	FromChannel        string          `json:"from_channel" binding:"required,notblank"`
	RegisterMethod     string          `json:"register_method" binding:"required,notblank"`
	FirstName          string          `json:"first_name" binding:"required,notblank,max=64"`
	LastName           *string         `json:"last_name" binding:"omitempty,max=64"`
	Avatar             *string         `json:"avatar"`
	NickName           *string         `json:"nick_name" binding:"omitempty,max=64"`
	Email              *string         `json:"email" binding:"omitempty,email"`
	Description        *string         `json:"description" binding:"omitempty,max=1000"`
	InterestedTags     []string        `json:"interested_tags"`
	IP                 *string         `json:"ip" binding:"omitempty,ip"`
	CountryCode        *string         `json:"country_code" binding:"omitempty,len=2"`
	BrowserLanguages   []string        `json:"browser_languages"`
	Language           *string         `json:"language"`
	IsBot              bool            `json:"is_bot"`
	Handler            string          `json:"handler" binding:"required,notblank,max=64" example:"alice"`
	IsCertifiedAccount bool            `json:"is_certified_account"`
	HumanVerify        bool            `json:"humanVerify"`
	LastLoginTime      *time.Time      `json:"last_login_time"`
	LineInfo           json.RawMessage `json:"line_info" swaggertype:"object"`
}

// UpdateRequest is the body of PUT /user. Absent fields are left untouched; Id defaults
// to the caller.
type UpdateRequest struct {
	ID                 *string         `json:"id"`
	AppHandle          *string         `json:"app_handle"`
	FirstName          *string         `json:"first_name" binding:"omitempty,notblank,max=64"`
	LastName           *string         `json:"last_name" binding:"omitempty,max=64"`
	Avatar             *string         `json:"avatar"`
	NickName           *string         `json:"nick_name" binding:"omitempty,max=64"`
	Email              *string         `json:"email" binding:"omitempty,email"`
	Description        *string         `json:"description" binding:"omitempty,max=1000"`
	InterestedTags     []string        `json:"interested_tags"`
	IP                 *string         `json:"ip" binding:"omitempty,ip"`
	CountryCode        *string         `json:"country_code" binding:"omitempty,len=2"`
	BrowserLanguages   []string        `json:"browser_languages"`
	Language           *string         `json:"language"`
	Handler            *string         `json:"handler" binding:"omitempty,notblank,max=64"`
	IsCertifiedAccount *bool           `json:"is_certified_account"`
	HumanVerify        *bool           `json:"humanVerify"`
	LastLoginTime      *time.Time      `json:"last_login_time"`
	LineInfo           json.RawMessage `json:"line_info" swaggertype:"object"`
}
