package asset

import (
	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// Aggregate type constant for Asset
const AggregateTypeAsset = "Asset"

// Event type constants for Asset
const (
	EventTypeAssetCreated    = "AssetCreated"
	EventTypeAssetUpdated    = "AssetUpdated"
	EventTypeAssetCheckedOut = "AssetCheckedOut"
	EventTypeAssetCheckedIn  = "AssetCheckedIn"
	EventTypeAssetRetired    = "AssetRetired"
	EventTypeAssetDeleted    = "AssetDeleted"
)

// AssetCreatedEvent is published when a new asset is created
type AssetCreatedEvent struct {
	shared.BaseDomainEvent
	AssetID uuid.UUID `json:"asset_id"`
	Tag     string    `json:"tag"`
	Name    string    `json:"name"`
}

// NewAssetCreatedEvent creates a new AssetCreatedEvent
func NewAssetCreatedEvent(asset *Asset) *AssetCreatedEvent {
	return &AssetCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssetCreated, AggregateTypeAsset, asset.ID),
		AssetID:         asset.ID,
		Tag:             asset.Tag,
		Name:            asset.Name,
	}
}

// AssetUpdatedEvent is published when an asset is updated
type AssetUpdatedEvent struct {
	shared.BaseDomainEvent
	AssetID uuid.UUID `json:"asset_id"`
	Tag     string    `json:"tag"`
	Name    string    `json:"name"`
}

// NewAssetUpdatedEvent creates a new AssetUpdatedEvent
func NewAssetUpdatedEvent(asset *Asset) *AssetUpdatedEvent {
	return &AssetUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssetUpdated, AggregateTypeAsset, asset.ID),
		AssetID:         asset.ID,
		Tag:             asset.Tag,
		Name:            asset.Name,
	}
}

// AssetCheckedOutEvent is published when an asset is assigned to a user
type AssetCheckedOutEvent struct {
	shared.BaseDomainEvent
	AssetID uuid.UUID `json:"asset_id"`
	Tag     string    `json:"tag"`
	UserID  uuid.UUID `json:"user_id"`
}

// NewAssetCheckedOutEvent creates a new AssetCheckedOutEvent
func NewAssetCheckedOutEvent(asset *Asset, userID uuid.UUID) *AssetCheckedOutEvent {
	return &AssetCheckedOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssetCheckedOut, AggregateTypeAsset, asset.ID),
		AssetID:         asset.ID,
		Tag:             asset.Tag,
		UserID:          userID,
	}
}

// AssetCheckedInEvent is published when an asset is returned
type AssetCheckedInEvent struct {
	shared.BaseDomainEvent
	AssetID uuid.UUID `json:"asset_id"`
	Tag     string    `json:"tag"`
	UserID  uuid.UUID `json:"user_id"` // Who had the asset
}

// NewAssetCheckedInEvent creates a new AssetCheckedInEvent
func NewAssetCheckedInEvent(asset *Asset, userID uuid.UUID) *AssetCheckedInEvent {
	return &AssetCheckedInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssetCheckedIn, AggregateTypeAsset, asset.ID),
		AssetID:         asset.ID,
		Tag:             asset.Tag,
		UserID:          userID,
	}
}

// AssetRetiredEvent is published when an asset is retired
type AssetRetiredEvent struct {
	shared.BaseDomainEvent
	AssetID uuid.UUID `json:"asset_id"`
	Tag     string    `json:"tag"`
}

// NewAssetRetiredEvent creates a new AssetRetiredEvent
func NewAssetRetiredEvent(asset *Asset) *AssetRetiredEvent {
	return &AssetRetiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssetRetired, AggregateTypeAsset, asset.ID),
		AssetID:         asset.ID,
		Tag:             asset.Tag,
	}
}

// AssetDeletedEvent is published when an asset is deleted
type AssetDeletedEvent struct {
	shared.BaseDomainEvent
	AssetID uuid.UUID `json:"asset_id"`
	Tag     string    `json:"tag"`
}

// NewAssetDeletedEvent creates a new AssetDeletedEvent
func NewAssetDeletedEvent(asset *Asset) *AssetDeletedEvent {
	return &AssetDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssetDeleted, AggregateTypeAsset, asset.ID),
		AssetID:         asset.ID,
		Tag:             asset.Tag,
	}
}
