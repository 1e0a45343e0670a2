package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkaya/campusdesk/internal/app/integrity"
	"github.com/mkaya/campusdesk/internal/app/models/dto"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
	"github.com/mkaya/campusdesk/internal/pkg/dberrors"
	"github.com/mkaya/campusdesk/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Controllers
// route every service error through here so the mapping stays in one
// place.
func HandleAPIError(c *gin.Context, err error) {
	var roleViolation *integrity.RoleViolation
	if errors.As(err, &roleViolation) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeRoleViolation, roleViolation.Error())))
		return
	}

	// The database trigger layer reports the same class of violation
	// when a write bypasses the application guard.
	if dberrors.IsRaiseException(err) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeRoleViolation, "write rejected: referenced user does not hold the required role")))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrNotAuthenticated),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, err.Error())))

	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrNotAssignedToModule):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())))

	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrModuleNotFound),
		errors.Is(err, apperrors.ErrAttendanceNotFound),
		errors.Is(err, apperrors.ErrSurveyNotFound),
		errors.Is(err, apperrors.ErrDeadlineNotFound),
		errors.Is(err, apperrors.ErrGradeNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeNotFound, err.Error())))

	case errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrUserAlreadyExists),
		errors.Is(err, apperrors.ErrStudentAlreadyExists),
		errors.Is(err, apperrors.ErrCourseAlreadyExists),
		errors.Is(err, apperrors.ErrModuleAlreadyExists),
		errors.Is(err, apperrors.ErrAttendanceAlreadyExists),
		errors.Is(err, apperrors.ErrSurveyAlreadyExists),
		errors.Is(err, apperrors.ErrDeadlineAlreadyExists),
		errors.Is(err, apperrors.ErrGradeAlreadyExists),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrRoleImmutable):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, err.Error())))

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidRole),
		errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidation, err.Error())))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternal, "an internal error occurred")))
	}
}

// HandleValidationError maps request binding failures to a 400 response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeValidation, err.Error())))
}
