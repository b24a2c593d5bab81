package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeMissingField     ErrorCode = "MISSING_FIELD"

	ErrCodeTenantNotFound     ErrorCode = "TENANT_NOT_FOUND"
	ErrCodeTenantInactive     ErrorCode = "TENANT_INACTIVE"
	ErrCodeMembershipNotFound ErrorCode = "MEMBERSHIP_NOT_FOUND"
	ErrCodeMembershipInactive ErrorCode = "MEMBERSHIP_INACTIVE"
	ErrCodeDuplicateMember    ErrorCode = "DUPLICATE_MEMBERSHIP"

	ErrCodeCustomRoleNotFound ErrorCode = "CUSTOM_ROLE_NOT_FOUND"
	ErrCodeUnknownModule      ErrorCode = "UNKNOWN_PERMISSION_MODULE"
	ErrCodeUnknownAction      ErrorCode = "UNKNOWN_PERMISSION_ACTION"

	ErrCodeRelationshipNotFound ErrorCode = "RELATIONSHIP_NOT_FOUND"
	ErrCodeRelationshipRole     ErrorCode = "RELATIONSHIP_ROLE_REQUIRED"
	ErrCodeRelationshipParty    ErrorCode = "RELATIONSHIP_PARTY_REQUIRED"
	ErrCodeRelationshipInactive ErrorCode = "RELATIONSHIP_INACTIVE"

	ErrCodeDealNotFound       ErrorCode = "DEAL_NOT_FOUND"
	ErrCodeStatusNotFound     ErrorCode = "STATUS_NOT_FOUND"
	ErrCodeStatusReason       ErrorCode = "STATUS_REASON_REQUIRED"
	ErrCodeContractNotFound   ErrorCode = "CONTRACT_NOT_FOUND"
	ErrCodeSiteNotFound       ErrorCode = "SITE_NOT_FOUND"
	ErrCodeCompanyNotFound    ErrorCode = "COMPANY_NOT_FOUND"
	ErrCodeContactNotFound    ErrorCode = "CONTACT_NOT_FOUND"
	ErrCodeDeviceNotFound     ErrorCode = "DEVICE_NOT_FOUND"
	ErrCodeQuoteNotFound      ErrorCode = "QUOTE_NOT_FOUND"
	ErrCodeInvalidPaymentTerm ErrorCode = "INVALID_PAYMENT_TERM"

	ErrCodeUnauthorizedAccess ErrorCode = "UNAUTHORIZED_ACCESS"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	ErrCodeFunctionInvoke ErrorCode = "FUNCTION_INVOKE_FAILED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewExternalError wraps a failure from a hosted function or other upstream
// dependency. These are surfaced as warnings, never as fatal errors.
func NewExternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Code:       ErrCodeFunctionInvoke,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

var (
	ErrTenantNotFound     = NewNotFoundError("Tenant not found", ErrCodeTenantNotFound)
	ErrTenantInactive     = NewForbiddenError("Tenant is inactive", ErrCodeTenantInactive)
	ErrMembershipNotFound = NewNotFoundError("No membership for this tenant", ErrCodeMembershipNotFound)
	ErrMembershipInactive = NewForbiddenError("Membership is inactive", ErrCodeMembershipInactive)
	ErrDuplicateMember    = NewConflictError("User already has an active membership for this tenant", ErrCodeDuplicateMember)

	ErrCustomRoleNotFound = NewNotFoundError("Custom role not found", ErrCodeCustomRoleNotFound)

	ErrRelationshipNotFound = NewNotFoundError("Relationship not found", ErrCodeRelationshipNotFound)
	ErrRelationshipRole     = NewValidationError("a relationship role must be selected", ErrCodeRelationshipRole)
	ErrRelationshipParty    = NewValidationError("exactly one of company or contact must be set", ErrCodeRelationshipParty)

	ErrDealNotFound     = NewNotFoundError("Deal not found", ErrCodeDealNotFound)
	ErrStatusNotFound   = NewNotFoundError("Deal status not found", ErrCodeStatusNotFound)
	ErrStatusReason     = NewValidationError("a reason is required for this status", ErrCodeStatusReason)
	ErrContractNotFound = NewNotFoundError("Contract not found", ErrCodeContractNotFound)
	ErrSiteNotFound     = NewNotFoundError("Site not found", ErrCodeSiteNotFound)
	ErrCompanyNotFound  = NewNotFoundError("Company not found", ErrCodeCompanyNotFound)
	ErrContactNotFound  = NewNotFoundError("Contact not found", ErrCodeContactNotFound)
	ErrDeviceNotFound   = NewNotFoundError("Device not found", ErrCodeDeviceNotFound)
	ErrQuoteNotFound    = NewNotFoundError("Quote not found", ErrCodeQuoteNotFound)

	ErrUnauthorizedAccess = NewForbiddenError("unauthorized access to resource", ErrCodeUnauthorizedAccess)
	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("User account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
