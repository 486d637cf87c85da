package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"

	// AssetTypePoints routes to the points endpoint and has no asset id.
	AssetTypePoints = "points"
)

// RewardDistributionRecord is the append-only snapshot of one distribution attempt.
// @Description Reward distribution history record
type RewardDistributionRecord struct {
	ID                  string          `json:"id"`
	UserID              *string         `json:"userId,omitempty"`
	TgHandle            *string         `json:"tgHandle,omitempty" example:"@alice"`
	AssetID             *string         `json:"assetId,omitempty" example:"1005"`
	AssetType           string          `json:"assetType" example:"ton"`
	Amount              decimal.Decimal `json:"amount" swaggertype:"string" example:"1.5"`
	Status              string          `json:"status" example:"success" enums:"success,failed"`
	Operator            string          `json:"operator"`
	FlowName            string          `json:"flowName"`
	FlowDescription     string          `json:"flowDescription"`
	Note                *string         `json:"note,omitempty"`
	ErrorMessage        *string         `json:"errorMessage,omitempty"`
	FoundUserHandles    []string        `json:"foundUserHandles"`
	NotFoundUserHandles []string        `json:"notFoundUserHandles"`
	SuccessHandles      []string        `json:"successHandles"`
	Timestamp           time.Time       `json:"timestamp"`
}

// HistoryFilter narrows a history listing. UserIdentifier matches user id or handle.
type HistoryFilter struct {
	UserIdentifier string
	AssetType      string
	Status         string
}

// CreateRecordRequest is the body of POST /reward-history.
type CreateRecordRequest struct {
	UserID              *string         `json:"userId"`
	TgHandle            *string         `json:"tgHandle"`
	AssetID             *string         `json:"assetId"`
	AssetType           string          `json:"assetType" binding:"required,notblank"`
	Amount              decimal.Decimal `json:"amount" swaggertype:"string"`
	Status              string          `json:"status" binding:"required,oneof=success failed"`
	Operator            string          `json:"operator" binding:"required,notblank"`
	FlowName            string          `json:"flowName" binding:"required,notblank"`
	FlowDescription     string          `json:"flowDescription" binding:"required,notblank"`
	Note                *string         `json:"note"`
	ErrorMessage        *string         `json:"errorMessage"`
	FoundUserHandles    []string        `json:"foundUserHandles"`
	NotFoundUserHandles []string        `json:"notFoundUserHandles"`
	SuccessHandles      []string        `json:"successHandles"`
}
