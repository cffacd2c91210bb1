package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Number     int
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

// WithNumber attaches the stable numeric code clients switch on.
func (e *AppError) WithNumber(number int) *AppError {
	e.Number = number

	return e
}

const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeDuplicateEntry     = "DUPLICATE_ENTRY"
	ErrCodeExternalService    = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInvalidState       = "INVALID_STATE"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeProductUnavailable = "PRODUCT_UNAVAILABLE"
	ErrCodeInsufficientStock  = "INSUFFICIENT_STOCK"
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeReturnWindow       = "RETURN_WINDOW_EXPIRED"
)

// Numeric codes are part of the public contract. Do not renumber.
const (
	NumInvalidToken       = 1000
	NumAdminRequired      = 1001
	NumInvalidCredentials = 1002
	NumLoginRateLimited   = 1003
	NumEmailTaken         = 1004

	NumPaymentOrderNotFound = 4001
	NumPaymentNotPending    = 4002
	NumCartLineNotFound     = 4003
	NumProductUnavailable   = 4004
	NumInsufficientStock    = 4005
	NumGuestCartIDRequired  = 4006
	NumCartConflict         = 4007
	NumPaymentNotOwner      = 4008

	NumCartEmpty          = 4101
	NumGatewayUnavailable = 4102
	NumGatewayRejected    = 4103
	NumGatewayNoToken     = 4104
	NumGuestInfoRequired  = 4105
	NumCheckoutConflict   = 4106

	NumOrderNotFound      = 4201
	NumIllegalTransition  = 4202
	NumCancelRefundFailed = 4203
	NumStaleOrder         = 4204
	NumUnknownStatus      = 4205

	NumReturnNotDelivered   = 4301
	NumReturnWindowExpired  = 4302
	NumReturnAlreadyStarted = 4303
	NumNoPendingReturn      = 4304
	NumInvalidRefundAmount  = 4305
	NumNotRefundable        = 4306

	NumRefundOrderNotFound = 4404

	NumUnexpected         = 5000
	NumRefundGatewayError = 5300
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized).WithNumber(NumInvalidToken)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden).WithNumber(NumAdminRequired)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError).WithNumber(NumUnexpected)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError).WithNumber(NumUnexpected)
}

func DuplicateEntryError(message string) *AppError {
	return NewAppError(ErrCodeDuplicateEntry, message, http.StatusConflict)
}

func ExternalServiceError(message string) *AppError {
	return NewAppError(ErrCodeExternalService, message, http.StatusBadGateway)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

func InvalidStateError(message string) *AppError {
	return NewAppError(ErrCodeInvalidState, message, http.StatusConflict)
}

func ConflictError(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, http.StatusConflict)
}

func ProductUnavailableError(message string) *AppError {
	return NewAppError(ErrCodeProductUnavailable, message, http.StatusUnprocessableEntity).WithNumber(NumProductUnavailable)
}

func InsufficientStockError(message string) *AppError {
	return NewAppError(ErrCodeInsufficientStock, message, http.StatusUnprocessableEntity).WithNumber(NumInsufficientStock)
}

func InvalidAmountError(message string) *AppError {
	return NewAppError(ErrCodeInvalidAmount, message, http.StatusBadRequest).WithNumber(NumInvalidRefundAmount)
}

func ReturnWindowExpiredError(message string) *AppError {
	return NewAppError(ErrCodeReturnWindow, message, http.StatusConflict).WithNumber(NumReturnWindowExpired)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
