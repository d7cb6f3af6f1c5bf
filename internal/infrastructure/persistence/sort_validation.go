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

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":                     true,
	"created_at":             true,
	"updated_at":             true,
	"po_number":              true,
	"supplier_id":            true,
	"supplier_name":          true,
	"status":                 true,
	"order_date":             true,
	"expected_delivery_date": true,
	"total_amount":           true,
	"sent_at":                true,
	"approved_at":            true,
}

// ReceivingSessionSortFields contains allowed sort fields for receiving sessions
var ReceivingSessionSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"session_number": true,
	"order_id":       true,
	"status":         true,
	"started_at":     true,
	"completed_at":   true,
}

// ReceivingLotSortFields contains allowed sort fields for receiving lots
var ReceivingLotSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"lot_number":        true,
	"material_id":       true,
	"location_id":       true,
	"container_status":  true,
	"quantity_received": true,
	"expiry_date":       true,
	"received_at":       true,
}

// ConversionLogSortFields contains allowed sort fields for conversion log entries
var ConversionLogSortFields = map[string]bool{
	"id":              true,
	"source_lot_id":   true,
	"target_lot_id":   true,
	"conversion_type": true,
	"performed_at":    true,
}

// DisposalLogSortFields contains allowed sort fields for disposal log entries
var DisposalLogSortFields = map[string]bool{
	"id":               true,
	"receiving_lot_id": true,
	"material_id":      true,
	"source_type":      true,
	"disposed_at":      true,
}
