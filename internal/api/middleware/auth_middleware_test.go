package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jascaniojs/parking-business-api/internal/service"
)

func newTestRouter(auth *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(auth)
	r := gin.New()
	r.Use(m.Authenticate())
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sub": c.GetString(UserIDKey), "role": c.GetString(UserRoleKey)})
	})
	r.GET("/admin", m.AuthorizeRole(service.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	auth := service.NewAuthService("secret", time.Hour)
	r := newTestRouter(auth)
	user, _ := auth.IssueToken("kiosk-7", "user")
	admin, _ := auth.IssueToken("ops-1", service.RoleAdmin)
	expired, _ := service.NewAuthService("secret", -time.Hour).IssueToken("kiosk-7", "user")
	foreign, _ := service.NewAuthService("other", time.Hour).IssueToken("kiosk-7", "user")

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/whoami", "", http.StatusUnauthorized},
		{"wrong scheme", "/whoami", "Basic " + user, http.StatusUnauthorized},
		{"no token", "/whoami", "Bearer", http.StatusUnauthorized},
		{"expired", "/whoami", "Bearer " + expired, http.StatusUnauthorized},
		{"other secret", "/whoami", "Bearer " + foreign, http.StatusUnauthorized},
		{"valid", "/whoami", "Bearer " + user, http.StatusOK},
		{"lowercase scheme", "/whoami", "bearer " + user, http.StatusOK},
		{"user on admin route", "/admin", "Bearer " + user, http.StatusForbidden},
		{"admin on admin route", "/admin", "Bearer " + admin, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(AuthorizationHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d; body %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}
