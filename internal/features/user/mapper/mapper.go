package mapper

import (
	"time"

	"github.com/google/uuid"

	"ops-admin-backend/internal/features/user/models"
)

// FromRegisterRequest builds a new Active user with a fresh id.
func FromRegisterRequest(req *models.RegisterRequest) *models.User {
	now := time.Now().UTC()
	tags := req.InterestedTags
	if tags == nil {
		tags = []string{}
	}
	langs := req.BrowserLanguages
	if langs == nil {
		langs = []string{}
	}
	return &models.User{
		ID:                 uuid.New().String(),
		AppID:              &req.AppID,
		AppHandle:          req.AppHandle,
		FromChannel:        &req.FromChannel,
		RegisterMethod:     &req.RegisterMethod,
		FirstName:          &req.FirstName,
		LastName:           req.LastName,
		Avatar:             req.Avatar,
		NickName:           req.NickName,
		Email:              req.Email,
		Description:        req.Description,
		InterestedTags:     tags,
		IP:                 req.IP,
		CountryCode:        req.CountryCode,
		BrowserLanguages:   langs,
		Language:           req.Language,
		IsBot:              req.IsBot,
		Handler:            req.Handler,
		IsCertifiedAccount: req.IsCertifiedAccount,
		HumanVerify:        req.HumanVerify,
		LastLoginTime:      req.LastLoginTime,
		LineInfo:           req.LineInfo,
		Status:             models.StatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// ApplyUpdate copies the present fields of req onto u.
func ApplyUpdate(u *models.User, req *models.UpdateRequest) {
	if req.AppHandle != nil {
		u.AppHandle = req.AppHandle
	}
	if req.FirstName != nil {
		u.FirstName = req.FirstName
	}
	if req.LastName != nil {
		u.LastName = req.LastName
	}
	if req.Avatar != nil {
		u.Avatar = req.Avatar
	}
	if req.NickName != nil {
		u.NickName = req.NickName
	}
	if req.Email != nil {
		u.Email = req.Email
	}
	if req.Description != nil {
		u.Description = req.Description
	}
	if req.InterestedTags != nil {
		u.InterestedTags = req.InterestedTags
	}
	if req.IP != nil {
		u.IP = req.IP
	}
	if req.CountryCode != nil {
		u.CountryCode = req.CountryCode
	}
	if req.BrowserLanguages != nil {
		u.BrowserLanguages = req.BrowserLanguages
	}
	if req.Language != nil {
		u.Language = req.Language
	}
	if req.Handler != nil {
		u.Handler = *req.Handler
	}
	if req.IsCertifiedAccount != nil {
		u.IsCertifiedAccount = *req.IsCertifiedAccount
	}
	if req.HumanVerify != nil {
		u.HumanVerify = *req.HumanVerify
	}
	if req.LastLoginTime != nil {
		u.LastLoginTime = req.LastLoginTime
	}
	if req.LineInfo != nil {
		u.LineInfo = req.LineInfo
	}
	u.UpdatedAt = time.Now().UTC()
}
