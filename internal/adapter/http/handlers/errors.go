package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"laundry_desk/internal/adapter/http/middleware"
	"laundry_desk/internal/infrastructure/logger"
	"laundry_desk/internal/usecase"
	"laundry_desk/pkg"
)

var (
	errInvalidPayload  = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)
	errPersistence     = pkg.NewDomainErrorSimple("PERSISTENCE_ERROR", "The data store is unavailable, please retry", http.StatusServiceUnavailable)
	errPartialFailure  = pkg.NewDomainErrorSimple("PARTIAL_FAILURE", "The image and its record could not be kept consistent", http.StatusInternalServerError)
	errStorageDisabled = pkg.NewDomainErrorSimple("STORAGE_NOT_CONFIGURED", "Image storage is not configured", http.StatusServiceUnavailable)
	errInternal        = pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
)

var validationErrors = []error{
	usecase.ErrInvalidOrderID,
	usecase.ErrInvalidCustomerName,
	usecase.ErrInvalidPhone,
	usecase.ErrInvalidLocation,
	usecase.ErrEmptyOrder,
	usecase.ErrInvalidStatusFilter,
	usecase.ErrInvalidServiceID,
	usecase.ErrInvalidServiceName,
	usecase.ErrInvalidPricingMode,
	usecase.ErrInvalidImage,
	usecase.ErrInvalidPrice,
	usecase.ErrInvalidCostID,
	usecase.ErrInvalidCostName,
	usecase.ErrMissingDeviceToken,
	usecase.ErrInvalidPeriod,
	usecase.ErrInvalidDateRange,
}

func mapError(err error) *pkg.AppError {
	// Partial failures may also wrap the store error; check them first.
	if errors.Is(err, usecase.ErrPartialFailure) {
		return errPartialFailure
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
		}
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidQuantity):
		return pkg.NewDomainError("INVALID_QUANTITY", err.Error(), err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrUnknownPricingMode):
		return pkg.NewDomainError("INVALID_PRICING_MODE", err.Error(), err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrIdentityRequired):
		return pkg.NewDomainError("IDENTITY_REQUIRED", "Unknown device, a display name is required", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCancellationNotConfirmed):
		return pkg.NewDomainError("CANCELLATION_NOT_CONFIRMED", "Cancellation must be confirmed", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainError("ORDER_NOT_FOUND", "Order not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainError("SERVICE_NOT_FOUND", err.Error(), err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrCostNotFound):
		return pkg.NewDomainError("COST_NOT_FOUND", "Cost not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderTerminal):
		return pkg.NewDomainError("ORDER_TERMINAL", "Order is already delivered or deleted", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainError("CONCURRENT_UPDATE", "Order was changed by someone else, reload and retry", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderNotArchived):
		return pkg.NewDomainError("ORDER_NOT_ARCHIVED", "Only delivered or deleted orders can be purged", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrStorageNotAvailable):
		return errStorageDisabled
	case errors.Is(err, usecase.ErrPersistence):
		return errPersistence
	default:
		return errInternal
	}
}

// respondError writes the mapped error. Server-side failures are logged with
// their cause, which never reaches the client.
func respondError(c *gin.Context, err error) {
	appErr := mapError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.FromContext(c).Error("request failed", zap.String("code", appErr.Code), zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// respondBindError reports a malformed or invalid payload.
func respondBindError(c *gin.Context, err error) {
	appErr := errInvalidPayload
	if details := middleware.ValidationDetails(err); details != nil {
		appErr = appErr.WithDetails(details)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
