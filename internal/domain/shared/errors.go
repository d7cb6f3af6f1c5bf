package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes used across the procurement and lot lifecycle core.
// Codes are stable: the HTTP layer maps them to status codes and clients
// branch on them.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeValidation    = "VALIDATION"

	// CodeInvalidState is returned when a transition is not legal from the
	// current status (e.g. SendToSupplier before Approve).
	CodeInvalidState = "INVALID_STATE"

	// CodeIneligiblePO is returned when receiving is attempted against a
	// purchase order that is not in a receivable status.
	CodeIneligiblePO = "INELIGIBLE_PO"

	// CodeStaleState is returned when a guarded transition lost a concurrent
	// modification race (optimistic lock version mismatch).
	CodeStaleState = "STALE_STATE"

	// Reassembly precondition codes. Callers surface which precondition
	// failed, so each sub-reason has a distinct code.
	CodeReassemblyInsufficientQuantity = "REASSEMBLY_INSUFFICIENT_QUANTITY"
	CodeReassemblyMissingParent        = "REASSEMBLY_MISSING_PARENT"
	CodeReassemblyNotOpen              = "REASSEMBLY_NOT_OPEN"
)

// Common domain errors
var (
	ErrNotFound   = NewDomainError(CodeNotFound, "Resource not found")
	ErrStaleState = NewDomainError(CodeStaleState, "Resource was modified by another user")
)

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code string) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}
