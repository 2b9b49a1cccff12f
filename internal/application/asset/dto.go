package asset

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opsdesk/backend/internal/domain/asset"
)

// CreateAssetRequest creates an asset
type CreateAssetRequest struct {
	Tag             string           `json:"tag" binding:"required,min=1,max=50"`
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	Description     string           `json:"description" binding:"omitempty,max=5000"`
	SerialNumber    string           `json:"serial_number" binding:"omitempty,max=100"`
	ModelName       string           `json:"model_name" binding:"omitempty,max=100"`
	CategoryID      *uuid.UUID       `json:"category_id"`
	ManufacturerID  *uuid.UUID       `json:"manufacturer_id"`
	ConditionID     *uuid.UUID       `json:"condition_id"`
	LocationID      *uuid.UUID       `json:"location_id"`
	PurchaseDate    *time.Time       `json:"purchase_date"`
	PurchasePrice   *decimal.Decimal `json:"purchase_price"`
	WarrantyExpires *time.Time       `json:"warranty_expires"`
	Notes           string           `json:"notes" binding:"omitempty,max=5000"`
}

// UpdateAssetRequest updates an asset, nil fields are left unchanged
type UpdateAssetRequest struct {
	Tag          *string `json:"tag" binding:"omitempty,min=1,max=50"`
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description  *string `json:"description" binding:"omitempty,max=5000"`
	SerialNumber *string `json:"serial_number" binding:"omitempty,max=100"`
	ModelName    *string `json:"model_name" binding:"omitempty,max=100"`
	Notes        *string `json:"notes" binding:"omitempty,max=5000"`
}

// ClassifyAssetRequest replaces the asset's picklist references.
// Omitted IDs clear the corresponding classification.
type ClassifyAssetRequest struct {
	CategoryID     *uuid.UUID `json:"category_id"`
	ManufacturerID *uuid.UUID `json:"manufacturer_id"`
	ConditionID    *uuid.UUID `json:"condition_id"`
	LocationID     *uuid.UUID `json:"location_id"`
}

// SetPurchaseInfoRequest records purchase details for an asset
type SetPurchaseInfoRequest struct {
	PurchaseDate    *time.Time      `json:"purchase_date"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	WarrantyExpires *time.Time      `json:"warranty_expires"`
}

// CheckoutAssetRequest assigns an asset to a user
type CheckoutAssetRequest struct {
	UserID  uuid.UUID  `json:"user_id" binding:"required"`
	DueBack *time.Time `json:"due_back"`
	Note    string     `json:"note" binding:"omitempty,max=2000"`
}

// CheckinAssetRequest returns a checked out asset
type CheckinAssetRequest struct {
	Note string `json:"note" binding:"omitempty,max=2000"`
}

// RecordAuditRequest records a physical verification of an asset.
// A location moves the asset there when it differs from the current one.
type RecordAuditRequest struct {
	LocationID *uuid.UUID `json:"location_id"`
	Note       string     `json:"note" binding:"omitempty,max=2000"`
}

// AssetListFilter filters the asset list
type AssetListFilter struct {
	Search         string     `form:"search"`
	Status         string     `form:"status" binding:"omitempty,oneof=in_service retired"`
	CategoryID     *uuid.UUID `form:"category_id"`
	ManufacturerID *uuid.UUID `form:"manufacturer_id"`
	ConditionID    *uuid.UUID `form:"condition_id"`
	LocationID     *uuid.UUID `form:"location_id"`
	AssignedToID   *uuid.UUID `form:"assigned_to_id"`
	CheckedOut     *bool      `form:"checked_out"`
	Overdue        *bool      `form:"overdue"`
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
	OrderBy        string     `form:"order_by"`
	OrderDir       string     `form:"order_dir"`
}

// AuditListFilter pages through an asset's history
type AuditListFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// AssetResponse is the asset representation returned to clients
type AssetResponse struct {
	ID              uuid.UUID       `json:"id"`
	Tag             string          `json:"tag"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	SerialNumber    string          `json:"serial_number,omitempty"`
	ModelName       string          `json:"model_name,omitempty"`
	CategoryID      *uuid.UUID      `json:"category_id,omitempty"`
	ManufacturerID  *uuid.UUID      `json:"manufacturer_id,omitempty"`
	ConditionID     *uuid.UUID      `json:"condition_id,omitempty"`
	LocationID      *uuid.UUID      `json:"location_id,omitempty"`
	PurchaseDate    *time.Time      `json:"purchase_date,omitempty"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	WarrantyExpires *time.Time      `json:"warranty_expires,omitempty"`
	AssignedToID    *uuid.UUID      `json:"assigned_to_id,omitempty"`
	CheckedOutAt    *time.Time      `json:"checked_out_at,omitempty"`
	DueBack         *time.Time      `json:"due_back,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Status          string          `json:"status"`
	CreatedBy       *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// AuditResponse is one entry in an asset's history
type AuditResponse struct {
	ID         uuid.UUID  `json:"id"`
	AssetID    uuid.UUID  `json:"asset_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Action     string     `json:"action"`
	Note       string     `json:"note,omitempty"`
	LocationID *uuid.UUID `json:"location_id,omitempty"`
	AuditedAt  time.Time  `json:"audited_at"`
}

// AssetStatusSummary summarizes the asset fleet
type AssetStatusSummary struct {
	InService  int64 `json:"in_service"`
	Retired    int64 `json:"retired"`
	CheckedOut int64 `json:"checked_out"`
	Overdue    int64 `json:"overdue"`
	Total      int64 `json:"total"`
}

// PicklistEntryRequest creates a picklist entry
type PicklistEntryRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	SortOrder int    `json:"sort_order"`
}

// UpdatePicklistEntryRequest updates a picklist entry, nil fields are left unchanged
type UpdatePicklistEntryRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	SortOrder *int    `json:"sort_order"`
	Active    *bool   `json:"active"`
}

// PicklistEntryResponse is the shared representation for all four picklists
type PicklistEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToAssetResponse converts a domain asset to a response DTO
func ToAssetResponse(a *asset.Asset) *AssetResponse {
	return &AssetResponse{
		ID:              a.ID,
		Tag:             a.Tag,
		Name:            a.Name,
		Description:     a.Description,
		SerialNumber:    a.SerialNumber,
		ModelName:       a.ModelName,
		CategoryID:      a.CategoryID,
		ManufacturerID:  a.ManufacturerID,
		ConditionID:     a.ConditionID,
		LocationID:      a.LocationID,
		PurchaseDate:    a.PurchaseDate,
		PurchasePrice:   a.PurchasePrice,
		WarrantyExpires: a.WarrantyExpires,
		AssignedToID:    a.AssignedToID,
		CheckedOutAt:    a.CheckedOutAt,
		DueBack:         a.DueBack,
		Notes:           a.Notes,
		Status:          string(a.Status),
		CreatedBy:       a.CreatedBy,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		Version:         a.Version,
	}
}

// ToAssetResponses converts a list of domain assets to response DTOs
func ToAssetResponses(assets []asset.Asset) []*AssetResponse {
	responses := make([]*AssetResponse, len(assets))
	for i := range assets {
		responses[i] = ToAssetResponse(&assets[i])
	}
	return responses
}

// ToAuditResponse converts a domain audit to a response DTO
func ToAuditResponse(a *asset.Audit) *AuditResponse {
	return &AuditResponse{
		ID:         a.ID,
		AssetID:    a.AssetID,
		UserID:     a.UserID,
		Action:     string(a.Action),
		Note:       a.Note,
		LocationID: a.LocationID,
		AuditedAt:  a.AuditedAt,
	}
}

// ToAuditResponses converts a list of domain audits to response DTOs
func ToAuditResponses(audits []asset.Audit) []*AuditResponse {
	responses := make([]*AuditResponse, len(audits))
	for i := range audits {
		responses[i] = ToAuditResponse(&audits[i])
	}
	return responses
}
