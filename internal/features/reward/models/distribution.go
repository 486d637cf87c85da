package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// batch row outcome reasons
const (
	ReasonNotFound      = "not_found"
	ReasonNotSent       = "not_sent"
	ReasonUpstreamError = "upstream_error"
)

// Asset is one entry of the reward catalog.
type Asset struct {
	Type    string `json:"type" example:"ton"`
	AssetID string `json:"assetId,omitempty" example:"1005"`
	Points  bool   `json:"points"`
}

// DistributeRequest is the body of POST /reward/distribute.
type DistributeRequest struct {
	TelegramHandles []string        `json:"telegramHandles" binding:"required,min=1"`
	AssetType       string          `json:"assetType" binding:"required,notblank"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string" example:"10"`
	FlowName        string          `json:"flowName" binding:"required,notblank"`
	FlowDescription string          `json:"flowDescription" binding:"required,notblank"`
	Sender          string          `json:"sender"`
	Note            *string         `json:"note"`
}

// DistributeResult is the reconciled outcome of one external call.
type DistributeResult struct {
	Status              string                     `json:"status" enums:"success,failed"`
	AssetType           string                     `json:"assetType"`
	AssetID             string                     `json:"assetId,omitempty"`
	Amount              decimal.Decimal            `json:"amount" swaggertype:"string"`
	RequestedHandles    []string                   `json:"requestedHandles"`
	FoundUserHandles    []string                   `json:"foundUserHandles"`
	NotFoundUserHandles []string                   `json:"notFoundUserHandles"`
	SuccessHandles      []string                   `json:"successHandles"`
	FailedFoundCount    int                        `json:"failedFoundCount"`
	Warnings            []string                   `json:"warnings,omitempty"`
	Passthrough         map[string]json.RawMessage `json:"passthrough,omitempty" swaggertype:"object"`
	Error               string                     `json:"error,omitempty"`
	HistoryID           string                     `json:"historyId,omitempty"`
}

// BatchRow is one recipient line of a batch distribution.
type BatchRow struct {
	ID              string          `json:"id" binding:"required,notblank"`
	UserID          *string         `json:"userId"`
	TgHandle        string          `json:"tgHandle" binding:"required,tghandle"`
	AssetType       string          `json:"assetType" binding:"required,notblank"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string"`
	FlowName        string          `json:"flowName" binding:"required,notblank"`
	FlowDescription string          `json:"flowDescription" binding:"required,notblank"`
}

// BatchRequest is the body of POST /reward/distribute/batch.
type BatchRequest struct {
	Rows   []BatchRow `json:"rows" binding:"required,min=1,dive"`
	Sender string     `json:"sender"`
}

// BatchRowResult reports the outcome of one row.
type BatchRowResult struct {
	ID       string `json:"id"`
	TgHandle string `json:"tgHandle"`
	Status   string `json:"status" enums:"success,failed"`
	Reason   string `json:"reason,omitempty" enums:"not_found,not_sent,upstream_error"`
}

// BatchResult is the outcome of a whole batch. Groups appear in first-row order.
type BatchResult struct {
	Rows      []BatchRowResult    `json:"rows"`
	Groups    []*DistributeResult `json:"groups"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}
