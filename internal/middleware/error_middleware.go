package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/emre/scholaris/internal/app/models/dto"
	"github.com/emre/scholaris/internal/pkg/apperrors"
	"github.com/emre/scholaris/internal/pkg/logger"
)

// HandleAPIError translates an application error into the matching HTTP
// response. Controllers call this for every service error so the mapping
// from the error taxonomy to status codes lives in exactly one place:
//
//	validation    -> 400
//	not found     -> 404
//	duplicate     -> 409
//	business rule -> 422
//	persistence   -> 500
func HandleAPIError(ctx *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, validationErr.Message).
			WithField(validationErr.Field)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, notFoundErr.Error())
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(detail))
		return
	}

	var duplicateErr *apperrors.DuplicateError
	if errors.As(err, &duplicateErr) {
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, duplicateErr.Error())
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(detail))
		return
	}

	var businessRuleErr *apperrors.BusinessRuleError
	if errors.As(err, &businessRuleErr) {
		detail := dto.NewErrorDetail(dto.ErrorCodeBusinessRule, businessRuleErr.Message).
			WithDetails(businessRuleErr.Rule)
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(detail))
		return
	}

	// Persistence failures and anything unclassified stay opaque to the
	// client; the cause goes to the log only.
	logger.Error().
		Err(err).
		Str("path", ctx.Request.URL.Path).
		Str("method", ctx.Request.Method).
		Msg("Unhandled error in request")

	code := dto.ErrorCodeInternalServer
	if errors.Is(err, apperrors.ErrPersistence) {
		code = dto.ErrorCodeDatabaseError
	}
	detail := dto.NewErrorDetail(code, "An unexpected error occurred")
	ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
}

// HandleBindingError reports a malformed or invalid request body. Field
// violations from the binding validator are rendered per field; anything
// else (bad JSON, wrong types) is passed through as-is.
func HandleBindingError(ctx *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		messages := make([]string, 0, len(fieldErrs))
		for _, fieldErr := range fieldErrs {
			messages = append(messages, fmt.Sprintf("%s failed the %s rule", fieldErr.Field(), fieldErr.Tag()))
		}
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").
			WithField(fieldErrs[0].Field()).
			WithDetails(strings.Join(messages, "; "))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").
		WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
