package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"acadlinker_backend/internal/config"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/service"
	"acadlinker_backend/internal/util"
	"acadlinker_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newAuthTestRouter(t *testing.T, identityURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	identity := service.NewIdentityClient(config.IdentityConfig{BaseURL: identityURL, APIKey: "test-key"})
	auth := service.NewAuthService(identity, repository.NewUserRepository(db), config.CacheConfig{
		TokenTTL:     time.Minute,
		TokenMaxSize: 16,
	})

	router := gin.New()
	router.GET("/protected", AuthMiddleware(auth), func(c *gin.Context) {
		id := util.GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID})
	})
	return router
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	router := newAuthTestRouter(t, "http://127.0.0.1:0")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareSurfacesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token has expired"}`))
	}))
	defer srv.Close()

	router := newAuthTestRouter(t, srv.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer stale")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 401 响应里要能看到提供方给出的失败原因
	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Message, "token has expired")
}

func TestAuthMiddlewarePassesValidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "user-9",
			"email": "chen.jing@example.com",
		})
	}))
	defer srv.Close()

	router := newAuthTestRouter(t, srv.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-9")
}
