package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"acadlinker_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 模拟身份提供方：令牌 "good" 有效，其余一律 401
func newFakeIdentityServer(t *testing.T, calls *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("apikey"))

		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "user-1",
			"email": "zhang.wei@example.com",
			"user_metadata": map[string]string{
				"full_name": "Zhang Wei",
				"mobile_no": "13800000000",
			},
		})
	}))
}

func newTestAuthService(t *testing.T, baseURL string, ttl time.Duration) (*AuthService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	identity := NewIdentityClient(config.IdentityConfig{BaseURL: baseURL, APIKey: "test-key"})
	auth := NewAuthService(identity, env.users, config.CacheConfig{
		TokenTTL:     ttl,
		TokenMaxSize: 16,
	})
	return auth, env
}

func TestAuthenticateCachesToken(t *testing.T) {
	var calls int64
	srv := newFakeIdentityServer(t, &calls)
	defer srv.Close()

	auth, _ := newTestAuthService(t, srv.URL, time.Minute)
	ctx := context.Background()

	id, err := auth.Authenticate(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "zhang.wei@example.com", id.Email)

	// TTL 内第二次校验不再打身份提供方
	_, err = auth.Authenticate(ctx, "good")
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))
}

func TestAuthenticateExpiredEntryReverifies(t *testing.T) {
	var calls int64
	srv := newFakeIdentityServer(t, &calls)
	defer srv.Close()

	// TTL 设成负数，缓存条目写入即过期
	auth, _ := newTestAuthService(t, srv.URL, -time.Second)
	ctx := context.Background()

	_, err := auth.Authenticate(ctx, "good")
	require.NoError(t, err)
	_, err = auth.Authenticate(ctx, "good")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&calls))
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	var calls int64
	srv := newFakeIdentityServer(t, &calls)
	defer srv.Close()

	auth, _ := newTestAuthService(t, srv.URL, time.Minute)
	_, err := auth.Authenticate(context.Background(), "bad")
	assert.Error(t, err)

	// 失败结果不会被缓存
	_, err = auth.Authenticate(context.Background(), "bad")
	assert.Error(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&calls))
}

func TestAuthenticateSelfHealsLocalUser(t *testing.T) {
	var calls int64
	srv := newFakeIdentityServer(t, &calls)
	defer srv.Close()

	auth, env := newTestAuthService(t, srv.URL, time.Minute)

	// 本地没有这个用户，首次校验后自动补建
	_, err := auth.Authenticate(context.Background(), "good")
	require.NoError(t, err)

	user, err := env.users.FindByID("user-1")
	require.NoError(t, err)
	assert.Equal(t, "Zhang Wei", user.FullName)
	assert.Equal(t, "13800000000", user.MobileNo)
}

func TestAuthenticateNameFallsBackToEmailLocalPart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "user-2",
			"email": "li.na@example.com",
		})
	}))
	defer srv.Close()

	auth, env := newTestAuthService(t, srv.URL, time.Minute)
	_, err := auth.Authenticate(context.Background(), "whatever")
	require.NoError(t, err)

	user, err := env.users.FindByID("user-2")
	require.NoError(t, err)
	assert.Equal(t, "li.na", user.FullName)
}

func TestEnsureUserDoesNotOverwriteProfile(t *testing.T) {
	var calls int64
	srv := newFakeIdentityServer(t, &calls)
	defer srv.Close()

	auth, env := newTestAuthService(t, srv.URL, time.Minute)

	// 已有用户资料不会被提供方数据覆盖
	existing := seedUser(t, env.db, "user-1", "自定义昵称")
	existing.Email = "zhang.wei@example.com"
	require.NoError(t, env.users.Save(existing))

	_, err := auth.Authenticate(context.Background(), "good")
	require.NoError(t, err)

	user, err := env.users.FindByID("user-1")
	require.NoError(t, err)
	assert.Equal(t, "自定义昵称", user.FullName)
}
