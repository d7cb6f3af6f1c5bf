package dto

import (
	"net/http"

	"github.com/labstock/backend/internal/domain/shared"
)

// Transport-level error codes. Domain codes are defined in the shared package
// and pass through unchanged so clients can branch on them.
const (
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeRequestTooLarge is used when the request body exceeds the limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// errorCodeHTTPStatus maps stable error codes to HTTP status codes.
// Reassembly precondition failures and receiving against an ineligible order
// are semantic rejections, so they map to 422 rather than 409.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	shared.CodeValidation:    http.StatusBadRequest,
	shared.CodeNotFound:      http.StatusNotFound,
	shared.CodeAlreadyExists: http.StatusConflict,
	shared.CodeInvalidState:  http.StatusConflict,
	shared.CodeStaleState:    http.StatusConflict,

	shared.CodeIneligiblePO:                   http.StatusUnprocessableEntity,
	shared.CodeReassemblyInsufficientQuantity: http.StatusUnprocessableEntity,
	shared.CodeReassemblyMissingParent:        http.StatusUnprocessableEntity,
	shared.CodeReassemblyNotOpen:              http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
