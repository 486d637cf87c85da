package models

import "time"

const (
	StatusActive   = "COMMON_STATUS_ACTIVE"
	StatusInactive = "COMMON_STATUS_INACTIVE"
)

// Token is an opaque bearer token bound to one user.
// @Description Bearer token record
type Token struct {
	ID        string    `json:"id" example:"5b0c2f0e-7a43-4c47-9d0e-3f2f7b9f6a10"`
	Token     string    `json:"token" example:"0f8b2d8e-4b8c-4c69-a0a3-7f0d2d1f3c55"`
	UserID    string    `json:"user_id" example:"9c1f0a55-52a4-4a6a-8a7e-2c1c0e3b7d21"`
	AppID     *string   `json:"app_id,omitempty"`
	AppHandle *string   `json:"app_handle,omitempty"`
	OpenID    *string   `json:"open_id,omitempty"`
	Status    string    `json:"status" example:"COMMON_STATUS_ACTIVE" enums:"COMMON_STATUS_ACTIVE,COMMON_STATUS_INACTIVE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Token) IsActive() bool {
	return t.Status == StatusActive
}

// IssueRequest is the body of POST /token.
type IssueRequest struct {
	UserID    string  `json:"user_id" binding:"required,notblank" example:"9c1f0a55-52a4-4a6a-8a7e-2c1c0e3b7d21"`
	AppID     *string `json:"app_id,omitempty"`
	AppHandle *string `json:"app_handle,omitempty"`
	OpenID    *string `json:"open_id,omitempty"`
}

// VerifyRequest is the body of PUT /token.
type VerifyRequest struct {
	Token string `json:"token" binding:"required,notblank"`
}

// TokenResponse is the public view of an issued token.
type TokenResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	AppID     *string   `json:"app_id,omitempty"`
	AppHandle *string   `json:"app_handle,omitempty"`
	OpenID    *string   `json:"open_id,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerProfile is the public subset of the owning user returned on verification.
type OwnerProfile struct {
	ID                 string    `json:"id"`
	FirstName          *string   `json:"first_name"`
	LastName           *string   `json:"last_name"`
	NickName           *string   `json:"nick_name"`
	Email              *string   `json:"email"`
	Handler            string    `json:"handler"`
	IsCertifiedAccount bool      `json:"is_certified_account"`
	CreatedAt          time.Time `json:"created_at"`
}

// VerifyResponse is the data of a successful PUT /token.
type VerifyResponse struct {
	Token     string        `json:"token"`
	User      *OwnerProfile `json:"user"`
	AppID     *string       `json:"app_id,omitempty"`
	AppHandle *string       `json:"app_handle,omitempty"`
	OpenID    *string       `json:"open_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
