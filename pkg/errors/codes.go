package errors

import (
	"net/http"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_005"
	ErrCodeTimeout            ErrorCode = "COMMON_006"
	ErrCodeValidation         ErrorCode = "COMMON_007"
	ErrCodeSerialization      ErrorCode = "COMMON_008"
	ErrCodeDatabaseError      ErrorCode = "COMMON_009"
	ErrCodeCacheError         ErrorCode = "COMMON_010"
)

// Conceptual-DFT Engine Error Codes
const (
	// ErrCodeInvalidFitInput marks rejected model-construction input: wrong
	// sample count, negative or non-unit-spaced electron counts, N0 < 1, or
	// non-monotonic energies.
	ErrCodeInvalidFitInput ErrorCode = "CONCEPT_001"

	// ErrCodeInvalidArgument marks rejected evaluation arguments: negative
	// electron count or a derivative order below one.
	ErrCodeInvalidArgument ErrorCode = "CONCEPT_002"

	// ErrCodeEvaluationDomain marks evaluations that are undefined for the
	// fitted model, e.g. softness at vanishing hardness or the one-sided
	// derivative of the linear model at the reference count.
	ErrCodeEvaluationDomain ErrorCode = "CONCEPT_003"

	// ErrCodeInversionFailed marks a mu -> N conversion with no real root in
	// the model's domain.
	ErrCodeInversionFailed ErrorCode = "CONCEPT_004"

	// ErrCodeUnsupportedOrder marks derivative orders beyond the closed-form
	// catalog (grand-potential orders above five) or operations a model
	// family does not define.
	ErrCodeUnsupportedOrder ErrorCode = "CONCEPT_005"
)

// Aliases kept short for dense call sites.
const (
	CodeInternal     = ErrCodeInternal
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeValidation   = ErrCodeValidation
	CodeDBQueryError = ErrCodeDatabaseError
	CodeCacheError   = ErrCodeCacheError
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,

	ErrCodeInvalidFitInput:  http.StatusBadRequest,
	ErrCodeInvalidArgument:  http.StatusBadRequest,
	ErrCodeEvaluationDomain: http.StatusUnprocessableEntity,
	ErrCodeInversionFailed:  http.StatusUnprocessableEntity,
	ErrCodeUnsupportedOrder: http.StatusBadRequest,
}

// HTTPStatus returns the HTTP status code associated with c, defaulting to
// 500 for unmapped codes.
func (c ErrorCode) HTTPStatus() int {
	if s, ok := ErrorCodeHTTPStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}
