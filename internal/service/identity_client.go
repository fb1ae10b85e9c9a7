package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"acadlinker_backend/internal/config"
)

// ProviderUser 身份提供方返回的用户信息
type ProviderUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName  string `json:"full_name"`
		MobileNo  string `json:"mobile_no"`
		AvatarURL string `json:"avatar_url"`
	} `json:"user_metadata"`
}

// IdentityClient 调用外部身份提供方校验访问令牌。
// 提供方是令牌有效性的唯一可信来源，本服务不解析令牌内容。
type IdentityClient struct {
	config config.IdentityConfig
	client *http.Client
}

func NewIdentityClient(cfg config.IdentityConfig) *IdentityClient {
	return &IdentityClient{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// VerifyToken 用令牌换取用户信息，令牌无效或过期时返回错误
func (c *IdentityClient) VerifyToken(ctx context.Context, token string) (*ProviderUser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.config.BaseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("identity provider rejected token (status %d): %s", resp.StatusCode, string(body))
	}

	var user ProviderUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("identity provider returned empty user id")
	}
	return &user, nil
}
