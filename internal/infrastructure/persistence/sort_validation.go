package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Common allowed sort fields for entities with base fields
// These are the common fields present in most entities

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"email":        true,
	"name":         true,
	"status":       true,
	"role":         true,
	"last_seen_at": true,
}

// TicketSortFields contains allowed sort fields for tickets
var TicketSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"number":           true,
	"subject":          true,
	"status":           true,
	"priority":         true,
	"source":           true,
	"assignee_id":      true,
	"project_id":       true,
	"project_position": true,
	"snoozed_until":    true,
	"closed_at":        true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"po_number":     true,
	"vendor_id":     true,
	"vendor_name":   true,
	"status":        true,
	"subtotal":      true,
	"tax_amount":    true,
	"shipping_cost": true,
	"grand_total":   true,
	"finalized_at":  true,
	"completed_at":  true,
}

// VendorSortFields contains allowed sort fields for vendors
var VendorSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"account_number": true,
	"contact_name":   true,
	"phone":          true,
	"email":          true,
	"status":         true,
}

// ContactSortFields contains allowed sort fields for contacts
var ContactSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"email":        true,
	"organization": true,
}

// ShippingLocationSortFields contains allowed sort fields for shipping locations
var ShippingLocationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"tax_rate":   true,
	"is_default": true,
}

// ProjectSortFields contains allowed sort fields for projects
var ProjectSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
}

// DocumentSortFields contains allowed sort fields for documents
var DocumentSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"title":       true,
	"file_name":   true,
	"size_bytes":  true,
	"category_id": true,
}

// AssetSortFields contains allowed sort fields for assets
var AssetSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"tag":           true,
	"name":          true,
	"serial_number": true,
	"status":        true,
	"purchase_date": true,
	"due_back":      true,
}

// ScheduledTicketSortFields contains allowed sort fields for scheduled tickets
var ScheduledTicketSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"cadence":     true,
	"active":      true,
	"last_run_at": true,
}

// PollRunSortFields contains allowed sort fields for mailbox poll runs
var PollRunSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"started_at": true,
	"status":     true,
}
