package service

import (
	"encoding/json"
	"fmt"
	"net/http"

	"acadlinker_backend/internal/config"
	"acadlinker_backend/pkg/logger"

	"go.uber.org/zap"
)

// GitHubClient 拉取团队关联仓库的最近提交，给 AI 助手当上下文。
// 超时设得很短：仓库信息拿不到不能拖慢整个 AI 请求。
type GitHubClient struct {
	config config.GitHubConfig
	client *http.Client
}

func NewGitHubClient(cfg config.GitHubConfig) *GitHubClient {
	return &GitHubClient{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Commit 提交摘要
type Commit struct {
	Message string
	Author  string
}

type githubCommitResp struct {
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
		} `json:"author"`
	} `json:"commit"`
}

// RecentCommits 最近 3 条提交。任何失败（仓库不存在、限流、超时）
// 都静默降级为空列表，只记日志。
func (c *GitHubClient) RecentCommits(repo string) []Commit {
	if repo == "" {
		return nil
	}

	url := fmt.Sprintf("%s/repos/%s/commits?per_page=3", c.config.APIBase, repo)
	resp, err := c.client.Get(url)
	if err != nil {
		logger.Log.Debug("GitHub 提交拉取失败", zap.String("repo", repo), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Debug("GitHub 返回非 200", zap.String("repo", repo), zap.Int("status", resp.StatusCode))
		return nil
	}

	var raw []githubCommitResp
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		logger.Log.Debug("GitHub 响应解析失败", zap.String("repo", repo), zap.Error(err))
		return nil
	}

	commits := make([]Commit, 0, len(raw))
	for _, r := range raw {
		commits = append(commits, Commit{
			Message: r.Commit.Message,
			Author:  r.Commit.Author.Name,
		})
	}
	return commits
}
