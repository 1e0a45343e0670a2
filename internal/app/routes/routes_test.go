package routes

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkaya/campusdesk/internal/app/controllers"
	pkgauth "github.com/mkaya/campusdesk/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func buildTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "campusdesk.test",
	})
	lgr := zerolog.Nop()

	SetupRouter(router, jwtService,
		controllers.NewAuthController(nil, lgr),
		controllers.NewAdminController(nil, lgr),
		controllers.NewStudentController(nil, lgr),
		controllers.NewStaffController(nil, nil, lgr),
		controllers.NewWelfareController(nil, nil, lgr),
	)
	return router
}

func hasRoute(router *gin.Engine, method, path string) bool {
	for _, r := range router.Routes() {
		if r.Method == method && r.Path == path {
			return true
		}
	}
	return false
}

func TestRouterRegistersRoleSurfaces(t *testing.T) {
	router := buildTestRouter()

	assert.True(t, hasRoute(router, http.MethodPost, "/api/v1/auth/login"))
	assert.True(t, hasRoute(router, http.MethodPost, "/api/v1/admin/users"))
	assert.True(t, hasRoute(router, http.MethodGet, "/api/v1/student/dashboard"))
	assert.True(t, hasRoute(router, http.MethodGet, "/api/v1/staff/modules/:id/analytics"))
	assert.True(t, hasRoute(router, http.MethodGet, "/api/v1/welfare/modules/:id/analytics"))
}

// The at-risk overview spans the caller's whole coverage, so it lives
// outside the per-module tree.
func TestRouterExposesGlobalAtRiskOverview(t *testing.T) {
	router := buildTestRouter()

	assert.True(t, hasRoute(router, http.MethodGet, "/api/v1/welfare/students/at-risk"))
	assert.True(t, hasRoute(router, http.MethodGet, "/api/v1/welfare/modules/:id/analytics/at-risk"))
	assert.True(t, hasRoute(router, http.MethodGet, "/api/v1/welfare/modules/:id/students/:studentId/report"))
}
