package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	assetdomain "github.com/civicgrid/waterworks/internal/asset/domain"
	billingdomain "github.com/civicgrid/waterworks/internal/billing/domain"
	connectiondomain "github.com/civicgrid/waterworks/internal/connection/domain"
	consumerdomain "github.com/civicgrid/waterworks/internal/consumer/domain"
	maintenancedomain "github.com/civicgrid/waterworks/internal/maintenance/domain"
	networkdomain "github.com/civicgrid/waterworks/internal/network/domain"
	paymentdomain "github.com/civicgrid/waterworks/internal/payment/domain"
	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictErrorMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, tariffdomain.ErrCorruptSlabs):
		// Bad configuration data, never worked around silently.
		return http.StatusInternalServerError, errorPayload{
			Type:    "integrity_error",
			Message: "corrupt tariff configuration",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isTariffValidationError(err),
		isConsumerValidationError(err),
		isConnectionValidationError(err),
		isBillingValidationError(err),
		isPaymentValidationError(err),
		isNetworkValidationError(err),
		isAssetValidationError(err),
		isMaintenanceValidationError(err):
		return true
	default:
		return false
	}
}

func isTariffValidationError(err error) bool {
	return errors.Is(err, tariffdomain.ErrInvalidCategory) ||
		errors.Is(err, tariffdomain.ErrInvalidName) ||
		errors.Is(err, tariffdomain.ErrInvalidEffectiveFrom) ||
		errors.Is(err, tariffdomain.ErrInvalidSlabs) ||
		errors.Is(err, tariffdomain.ErrInvalidSlabRange) ||
		errors.Is(err, tariffdomain.ErrInvalidSlabRate) ||
		errors.Is(err, tariffdomain.ErrInvalidID)
}

func isConsumerValidationError(err error) bool {
	return errors.Is(err, consumerdomain.ErrInvalidName) ||
		errors.Is(err, consumerdomain.ErrInvalidAddress) ||
		errors.Is(err, consumerdomain.ErrInvalidCategory) ||
		errors.Is(err, consumerdomain.ErrInvalidStatus) ||
		errors.Is(err, consumerdomain.ErrInvalidID)
}

func isConnectionValidationError(err error) bool {
	return errors.Is(err, connectiondomain.ErrInvalidConsumer) ||
		errors.Is(err, connectiondomain.ErrInvalidType) ||
		errors.Is(err, connectiondomain.ErrInvalidMeterSerial) ||
		errors.Is(err, connectiondomain.ErrInvalidStatus) ||
		errors.Is(err, connectiondomain.ErrInvalidID)
}

func isBillingValidationError(err error) bool {
	return errors.Is(err, billingdomain.ErrInvalidConsumer) ||
		errors.Is(err, billingdomain.ErrInvalidConnection) ||
		errors.Is(err, billingdomain.ErrInvalidBillMonth) ||
		errors.Is(err, billingdomain.ErrInvalidBillDate) ||
		errors.Is(err, billingdomain.ErrInvalidDueDate) ||
		errors.Is(err, billingdomain.ErrInvalidReading) ||
		errors.Is(err, billingdomain.ErrInvalidID)
}

func isPaymentValidationError(err error) bool {
	return errors.Is(err, paymentdomain.ErrInvalidAmount) ||
		errors.Is(err, paymentdomain.ErrInvalidMode) ||
		errors.Is(err, paymentdomain.ErrInvalidID)
}

func isNetworkValidationError(err error) bool {
	return errors.Is(err, networkdomain.ErrInvalidName) ||
		errors.Is(err, networkdomain.ErrInvalidType) ||
		errors.Is(err, networkdomain.ErrInvalidCapacity) ||
		errors.Is(err, networkdomain.ErrInvalidSource) ||
		errors.Is(err, networkdomain.ErrInvalidStatus) ||
		errors.Is(err, networkdomain.ErrInvalidID)
}

func isAssetValidationError(err error) bool {
	return errors.Is(err, assetdomain.ErrInvalidName) ||
		errors.Is(err, assetdomain.ErrInvalidType) ||
		errors.Is(err, assetdomain.ErrInvalidStatus) ||
		errors.Is(err, assetdomain.ErrInvalidID)
}

func isMaintenanceValidationError(err error) bool {
	return errors.Is(err, maintenancedomain.ErrInvalidAsset) ||
		errors.Is(err, maintenancedomain.ErrInvalidDescription) ||
		errors.Is(err, maintenancedomain.ErrInvalidSchedule) ||
		errors.Is(err, maintenancedomain.ErrInvalidStatus) ||
		errors.Is(err, maintenancedomain.ErrInvalidID)
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, billingdomain.ErrDuplicateBill),
		errors.Is(err, paymentdomain.ErrBillSettled),
		errors.Is(err, paymentdomain.ErrOverpayment),
		errors.Is(err, paymentdomain.ErrConcurrentUpdate),
		errors.Is(err, maintenancedomain.ErrTerminalStatus):
		return true
	default:
		return false
	}
}

func conflictErrorMessage(err error) string {
	switch {
	case errors.Is(err, paymentdomain.ErrConcurrentUpdate):
		return "concurrent update, retry with fresh state"
	case errors.Is(err, paymentdomain.ErrOverpayment):
		return "payment exceeds outstanding balance"
	case errors.Is(err, paymentdomain.ErrBillSettled):
		return "bill already settled"
	case errors.Is(err, billingdomain.ErrDuplicateBill):
		return "bill already exists for this connection and month"
	default:
		return "conflict"
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, tariffdomain.ErrNotFound),
		errors.Is(err, tariffdomain.ErrNoTariff),
		errors.Is(err, consumerdomain.ErrNotFound),
		errors.Is(err, connectiondomain.ErrNotFound),
		errors.Is(err, billingdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrBillNotFound),
		errors.Is(err, networkdomain.ErrNotFound),
		errors.Is(err, assetdomain.ErrNotFound),
		errors.Is(err, maintenancedomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}

func classifyErrorForLog(err error) (string, string) {
	switch {
	case err == nil:
		return "", ""
	case asValidationErrors(err) != nil, isValidationError(err):
		return "validation_error", validationErrorCode(err)
	case isConflictError(err):
		return "conflict", err.Error()
	case isNotFoundError(err):
		return "not_found", err.Error()
	case errors.Is(err, tariffdomain.ErrCorruptSlabs):
		return "integrity_error", "corrupt_slabs"
	default:
		return "internal_error", ""
	}
}
