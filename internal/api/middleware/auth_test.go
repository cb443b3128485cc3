package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafiALMahmud/Job-portal1/internal/cache"
	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/services"
)

func TestTokenFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name  string
		setup func(r *http.Request)
		want  string
	}{
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, "abc"},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: "fromcookie"}) }, "fromcookie"},
		{"query ignored on plain requests", func(r *http.Request) { r.URL.RawQuery = "access_token=q" }, ""},
		{"query on websocket upgrade", func(r *http.Request) {
			r.URL.RawQuery = "access_token=q"
			r.Header.Set("Upgrade", "websocket")
		}, "q"},
		{"header wins over cookie", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer header")
			r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie"})
		}, "header"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			tc.setup(c.Request)
			assert.Equal(t, tc.want, tokenFrom(c, "access_token"))
		})
	}
}

func TestAuthAndRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := services.NewTokenService("middleware-test-secret", "jobportal", time.Hour, cache.NewMemoryCache(), nil)

	r := gin.New()
	r.GET("/admin", Auth(tokens, ""), RequireAdmin(), func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		require.True(t, ok)
		c.String(http.StatusOK, actor.ID)
	})
	r.GET("/maybe", OptionalAuth(tokens, ""), func(c *gin.Context) {
		_, ok := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	get := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	admin, err := tokens.Issue("admin-1", models.UserTypeAdmin)
	require.NoError(t, err)
	seeker, err := tokens.Issue("seeker-1", models.UserTypeAspirant)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get("/admin", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get("/admin", "garbage").Code)
	assert.Equal(t, http.StatusForbidden, get("/admin", seeker.Token).Code)

	w := get("/admin", admin.Token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-1", w.Body.String())

	assert.JSONEq(t, `{"authenticated":false}`, get("/maybe", "garbage").Body.String())
	assert.JSONEq(t, `{"authenticated":true}`, get("/maybe", seeker.Token).Body.String())
}
