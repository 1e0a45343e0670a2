package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mkaya/campusdesk/internal/app/integrity"
	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
)

func runHandleAPIError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	HandleAPIError(c, err)
	return rec
}

func TestHandleAPIErrorRoleViolation(t *testing.T) {
	violation := &integrity.RoleViolation{
		Table:    "module",
		Column:   "welfare_staff_id",
		UserID:   "MS001",
		Expected: models.RoleWelfareStaff,
		Actual:   models.RoleModuleStaff,
	}

	rec := runHandleAPIError(t, violation)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ROLE_VIOLATION")
	assert.Contains(t, rec.Body.String(), "welfare_staff_id")
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"not assigned", apperrors.ErrNotAssignedToModule, http.StatusForbidden},
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound},
		{"survey duplicate", apperrors.ErrSurveyAlreadyExists, http.StatusConflict},
		{"role immutable", apperrors.ErrRoleImmutable, http.StatusConflict},
		{"invalid role", apperrors.ErrInvalidRole, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runHandleAPIError(t, tc.err)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

// Wrapped errors must map the same as their sentinels.
func TestHandleAPIErrorUnwrapsCustomErrors(t *testing.T) {
	err := apperrors.NewForbiddenError("students can only access their own data")
	rec := runHandleAPIError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "students can only access their own data")
}

// A failed rollback joins both errors; the primary error must still
// drive the status, not fall through to 500.
func TestHandleAPIErrorJoinedRollbackFailure(t *testing.T) {
	violation := &integrity.RoleViolation{
		Table:    "attendance",
		Column:   "stud_id",
		UserID:   "WS001",
		Expected: models.RoleStudent,
		Actual:   models.RoleWelfareStaff,
	}
	err := errors.Join(violation, errors.New("rollback failed: conn closed"))

	rec := runHandleAPIError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ROLE_VIOLATION")
}

// Internal errors must not leak their message to the client.
func TestHandleAPIErrorHidesInternalDetail(t *testing.T) {
	rec := runHandleAPIError(t, errors.New("pq: connection refused on host db-internal"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db-internal")
}
