package service

import (
	"context"
	"testing"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHelpService(t *testing.T, env *testEnv) *HelpService {
	t.Helper()
	return NewHelpService(env.help, env.users, newTestStorage(t), env.notifier, env.db)
}

func seedHelpRequest(t *testing.T, env *testEnv, userID, title string) *model.HelpRequest {
	t.Helper()
	req := &model.HelpRequest{
		UserID:      userID,
		Title:       title,
		Description: "描述",
		ImageURL:    "err.png",
		Tags:        "python,sql",
	}
	require.NoError(t, env.help.Create(req))
	return req
}

func TestCreateHelpConstraints(t *testing.T) {
	env := newTestEnv(t)
	svc := newHelpService(t, env)
	ctx := context.Background()

	seedUser(t, env.db, "alice", "Alice Chen")

	// 截图必传
	_, err := svc.Create(ctx, "alice", CreateHelpInput{Title: "t", Description: "d", Tags: "go"})
	assert.ErrorIs(t, err, util.ErrImageRequired)

	// 已有 open 求助时拒绝再发
	seedHelpRequest(t, env, "alice", "第一条")
	_, err = svc.Create(ctx, "alice", CreateHelpInput{Title: "t2", Description: "d", Tags: "go"})
	assert.ErrorIs(t, err, util.ErrHelpOpenExists)
}

func TestHelpFeedExcludesOwnAndClosed(t *testing.T) {
	env := newTestEnv(t)
	svc := newHelpService(t, env)

	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")
	seedUser(t, env.db, "carol", "Carol Wang")

	seedHelpRequest(t, env, "alice", "alice 的求助")
	bobReq := seedHelpRequest(t, env, "bob", "bob 的求助")
	seedHelpRequest(t, env, "carol", "carol 的求助")

	env.db.Model(bobReq).Update("status", model.HelpSolved)

	feed, err := svc.Feed("alice")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "carol 的求助", feed[0].Title)
	assert.Equal(t, "Carol Wang", feed[0].AskerName)
}

func TestSolveRules(t *testing.T) {
	env := newTestEnv(t)
	svc := newHelpService(t, env)

	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")

	req := seedHelpRequest(t, env, "alice", "求助")

	// 不能解答自己的求助
	_, err := svc.Solve("alice", req.ID, "self answer", "")
	assert.ErrorIs(t, err, util.ErrSolveOwnRequest)

	sol, err := svc.Solve("bob", req.ID, "试试重装依赖", "pip install -r requirements.txt")
	require.NoError(t, err)
	assert.False(t, sol.IsAccepted)

	// 求助者收到解答通知
	count, err := env.notifier.UnreadCount("alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// 求助已解决后不能再解答
	env.db.Model(req).Update("status", model.HelpSolved)
	_, err = svc.Solve("bob", req.ID, "又一个答案", "")
	assert.ErrorIs(t, err, util.ErrAlreadySolved)
}

func TestAcceptSolution(t *testing.T) {
	env := newTestEnv(t)
	svc := newHelpService(t, env)

	seedUser(t, env.db, "alice", "Alice Chen")
	bob := seedUser(t, env.db, "bob", "Bob Li")

	req := seedHelpRequest(t, env, "alice", "求助")
	sol, err := svc.Solve("bob", req.ID, "解决方案", "")
	require.NoError(t, err)

	// 只有求助者能采纳
	assert.ErrorIs(t, svc.AcceptSolution("bob", sol.ID), util.ErrPermissionDenied)

	require.NoError(t, svc.AcceptSolution("alice", sol.ID))

	// 求助转已解决，解答被标记采纳，解答者 +10 声望
	fresh, err := env.help.FindByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.HelpSolved, fresh.Status)

	accepted, err := env.help.GetSolution(sol.ID)
	require.NoError(t, err)
	assert.True(t, accepted.IsAccepted)

	solver, err := env.users.FindByID(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, solver.ReputationPoints)

	// 采纳是终态，不能二次采纳
	assert.ErrorIs(t, svc.AcceptSolution("alice", sol.ID), util.ErrAlreadySolved)
}

func TestHelpDetailOrdersAcceptedFirst(t *testing.T) {
	env := newTestEnv(t)
	svc := newHelpService(t, env)

	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")
	seedUser(t, env.db, "carol", "Carol Wang")

	req := seedHelpRequest(t, env, "alice", "求助")
	_, err := svc.Solve("bob", req.ID, "第一个答案", "")
	require.NoError(t, err)
	second, err := svc.Solve("carol", req.ID, "第二个答案", "")
	require.NoError(t, err)

	require.NoError(t, svc.AcceptSolution("alice", second.ID))

	detail, err := svc.Detail("alice", req.ID)
	require.NoError(t, err)
	assert.True(t, detail.IsOwner)
	require.Len(t, detail.Solutions, 2)
	assert.True(t, detail.Solutions[0].IsAccepted)
	assert.Equal(t, "第二个答案", detail.Solutions[0].Content)
}
