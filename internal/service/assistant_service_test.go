package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"acadlinker_backend/internal/config"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 模拟 OpenAI 兼容接口，记录收到的消息
func newFakeAIServer(t *testing.T, captured *ChatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "模拟回复"}},
			},
		})
	}))
}

func newFakeGitHubServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/acme/webapp/commits", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("per_page"))
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"commit": map[string]interface{}{
				"message": "fix: login redirect\n\ndetails",
				"author":  map[string]string{"name": "Bob"},
			}},
		})
	}))
}

func setupAssistant(t *testing.T, env *testEnv, aiURL, githubURL string) *AssistantService {
	t.Helper()
	chatRepo := repository.NewAIChatRepository(env.db)
	ai := NewAIService(config.AIConfig{BaseURL: aiURL, Model: "test-model"})
	github := NewGitHubClient(config.GitHubConfig{APIBase: githubURL, Timeout: 2 * time.Second})
	return NewAssistantService(env.teams, env.tasks, chatRepo, ai, github)
}

func TestAssistantAskBuildsTeamContext(t *testing.T) {
	env := newTestEnv(t)

	var captured ChatCompletionRequest
	aiSrv := newFakeAIServer(t, &captured)
	defer aiSrv.Close()
	ghSrv := newFakeGitHubServer(t)
	defer ghSrv.Close()

	svc := setupAssistant(t, env, aiSrv.URL, ghSrv.URL)

	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")

	teamSvc := newTeamService(t, env)
	team, err := teamSvc.Create(context.Background(), "alice", CreateTeamInput{
		Name:       "Web 小队",
		GithubRepo: "acme/webapp",
	})
	require.NoError(t, err)
	require.NoError(t, teamSvc.Invite("alice", team.ID, "bob", ""))
	invites, _ := teamSvc.MyInvites("bob")
	require.NoError(t, teamSvc.RespondInvite("bob", invites[0].ID, true))

	bobID := "bob"
	taskSvc := NewTaskService(env.tasks, env.teams, env.notifier)
	_, err = taskSvc.Create("alice", CreateTaskInput{
		TeamID: team.ID, Title: "重构路由", Priority: "high", AssignedToID: &bobID,
	})
	require.NoError(t, err)

	_, err = teamSvc.SendChat("bob", team.ID, "今晚联调")
	require.NoError(t, err)

	reply, err := svc.Ask("alice", team.ID, "现在进展怎么样?")
	require.NoError(t, err)
	assert.Equal(t, "模拟回复", reply.Content)
	assert.True(t, reply.IsBot)

	// system 提示词包含成员、任务、群聊和提交动态
	require.NotEmpty(t, captured.Messages)
	system := captured.Messages[0]
	assert.Equal(t, "system", system.Role)
	assert.Contains(t, system.Content, "Web 小队")
	assert.Contains(t, system.Content, "Alice（队长）")
	assert.Contains(t, system.Content, "重构路由")
	assert.Contains(t, system.Content, "今晚联调")
	assert.Contains(t, system.Content, "fix: login redirect")
	assert.NotContains(t, system.Content, "details")

	// 提问和回复成对落库
	history, err := svc.History("alice", team.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.False(t, history[0].IsBot)
	assert.True(t, history[1].IsBot)
}

func TestAssistantCarriesRecentHistory(t *testing.T) {
	env := newTestEnv(t)

	var captured ChatCompletionRequest
	aiSrv := newFakeAIServer(t, &captured)
	defer aiSrv.Close()
	ghSrv := newFakeGitHubServer(t)
	defer ghSrv.Close()

	svc := setupAssistant(t, env, aiSrv.URL, ghSrv.URL)

	seedUser(t, env.db, "alice", "Alice Chen")
	teamSvc := newTeamService(t, env)
	team, err := teamSvc.Create(context.Background(), "alice", CreateTeamInput{Name: "小队"})
	require.NoError(t, err)

	_, err = svc.Ask("alice", team.ID, "第一个问题")
	require.NoError(t, err)
	_, err = svc.Ask("alice", team.ID, "第二个问题")
	require.NoError(t, err)

	// 第二次请求带上了第一轮问答
	roles := make([]string, 0, len(captured.Messages))
	for _, m := range captured.Messages {
		roles = append(roles, m.Role)
	}
	assert.Equal(t, []string{"system", "user", "assistant", "user"}, roles)
	assert.Equal(t, "第一个问题", captured.Messages[1].Content)
	assert.Equal(t, "第二个问题", captured.Messages[3].Content)
}

func TestAssistantMembersOnly(t *testing.T) {
	env := newTestEnv(t)

	var captured ChatCompletionRequest
	aiSrv := newFakeAIServer(t, &captured)
	defer aiSrv.Close()

	svc := setupAssistant(t, env, aiSrv.URL, aiSrv.URL)

	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "mallory", "Mallory Xu")
	teamSvc := newTeamService(t, env)
	team, err := teamSvc.Create(context.Background(), "alice", CreateTeamInput{Name: "小队"})
	require.NoError(t, err)

	_, err = svc.Ask("mallory", team.ID, "让我看看")
	assert.ErrorIs(t, err, util.ErrNotTeamMember)

	_, err = svc.History("mallory", team.ID)
	assert.ErrorIs(t, err, util.ErrNotTeamMember)
}

func TestGitHubClientDegradesSilently(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewGitHubClient(config.GitHubConfig{APIBase: srv.URL, Timeout: time.Second})
	assert.Nil(t, client.RecentCommits("ghost/nope"))
	assert.Nil(t, client.RecentCommits(""))
}

func TestAssistantEmptyQuestion(t *testing.T) {
	env := newTestEnv(t)
	svc := setupAssistant(t, env, "http://127.0.0.1:0", "http://127.0.0.1:0")

	seedUser(t, env.db, "alice", "Alice Chen")
	teamSvc := newTeamService(t, env)
	team, err := teamSvc.Create(context.Background(), "alice", CreateTeamInput{Name: "小队"})
	require.NoError(t, err)

	_, err = svc.Ask("alice", team.ID, "   ")
	assert.ErrorIs(t, err, util.ErrEmptyMessage)
}
