package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"acadlinker_backend/internal/config"
	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/util"
	"acadlinker_backend/pkg/logger"
	"acadlinker_backend/pkg/monitoring"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

type cachedIdentity struct {
	identity  util.Identity
	expiresAt time.Time
}

// AuthService 令牌校验 + 本地用户自愈创建。
// 校验结果进程内缓存 TTL 时间，缓存容量有上界，满了按 LRU 淘汰，
// 避免每个请求都打一次身份提供方。
type AuthService struct {
	Identity *IdentityClient
	UserRepo *repository.UserRepository

	ttl   time.Duration
	mu    sync.Mutex
	cache *lru.Cache[string, cachedIdentity]
}

func NewAuthService(identity *IdentityClient, userRepo *repository.UserRepository, cfg config.CacheConfig) *AuthService {
	cache, _ := lru.New[string, cachedIdentity](cfg.TokenMaxSize)
	return &AuthService{
		Identity: identity,
		UserRepo: userRepo,
		ttl:      cfg.TokenTTL,
		cache:    cache,
	}
}

// Authenticate 校验访问令牌并返回请求者身份。
// 缓存命中且未过期时不访问身份提供方；未命中时远程校验，
// 并确保本地用户行存在。
func (s *AuthService) Authenticate(ctx context.Context, token string) (*util.Identity, error) {
	s.mu.Lock()
	if entry, ok := s.cache.Get(token); ok {
		if time.Now().Before(entry.expiresAt) {
			id := entry.identity
			s.mu.Unlock()
			monitoring.TokenCacheHits.WithLabelValues("hit").Inc()
			return &id, nil
		}
		s.cache.Remove(token)
	}
	s.mu.Unlock()
	monitoring.TokenCacheHits.WithLabelValues("miss").Inc()

	providerUser, err := s.Identity.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := s.ensureLocalUser(providerUser); err != nil {
		return nil, err
	}

	id := util.Identity{UserID: providerUser.ID, Email: providerUser.Email}
	s.mu.Lock()
	s.cache.Add(token, cachedIdentity{identity: id, expiresAt: time.Now().Add(s.ttl)})
	s.mu.Unlock()
	return &id, nil
}

// ensureLocalUser 令牌合法但本地没有用户行时补建（自愈），
// 姓名缺省取邮箱 @ 前的部分
func (s *AuthService) ensureLocalUser(pu *ProviderUser) error {
	fullName := strings.TrimSpace(pu.UserMetadata.FullName)
	if fullName == "" {
		if i := strings.Index(pu.Email, "@"); i > 0 {
			fullName = pu.Email[:i]
		} else {
			fullName = pu.Email
		}
	}

	user := model.User{
		ID:       pu.ID,
		Email:    pu.Email,
		FullName: fullName,
		MobileNo: pu.UserMetadata.MobileNo,
	}
	if pu.UserMetadata.AvatarURL != "" {
		user.ProfilePic = pu.UserMetadata.AvatarURL
	}

	if err := s.UserRepo.EnsureUser(&user); err != nil {
		logger.Log.Error("自愈创建用户失败", zap.String("userId", pu.ID), zap.Error(err))
		return err
	}
	return nil
}

// InvalidateToken 把某个令牌从缓存里摘掉（主要给测试用）
func (s *AuthService) InvalidateToken(token string) {
	s.mu.Lock()
	s.cache.Remove(token)
	s.mu.Unlock()
}
