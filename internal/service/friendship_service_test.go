package service

import (
	"testing"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequest(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")

	t.Run("不能添加自己", func(t *testing.T) {
		assert.ErrorIs(t, env.friendship.SendRequest("alice", "alice"), util.ErrSelfRequest)
	})

	t.Run("对方不存在", func(t *testing.T) {
		assert.ErrorIs(t, env.friendship.SendRequest("alice", "ghost"), util.ErrUserNotFound)
	})

	t.Run("正常发送并通知对方", func(t *testing.T) {
		require.NoError(t, env.friendship.SendRequest("alice", "bob"))

		reqs, err := env.friendship.PendingRequests("bob")
		require.NoError(t, err)
		require.Len(t, reqs, 1)
		assert.Equal(t, "alice", reqs[0].SenderID)
		assert.Equal(t, "Alice Chen", reqs[0].Sender.FullName)

		count, err := env.notifier.UnreadCount("bob")
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("重复发送被拦截", func(t *testing.T) {
		assert.ErrorIs(t, env.friendship.SendRequest("alice", "bob"), util.ErrRequestPending)
	})

	t.Run("反向申请提示去收件箱处理", func(t *testing.T) {
		assert.ErrorIs(t, env.friendship.SendRequest("bob", "alice"), util.ErrReversePending)
	})
}

func TestAcceptRequestBuildsSymmetricFriendship(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")

	require.NoError(t, env.friendship.SendRequest("alice", "bob"))
	reqs, err := env.friendship.PendingRequests("bob")
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	// 发送方不能替接收方接受
	assert.ErrorIs(t, env.friendship.AcceptRequest("alice", reqs[0].ID), util.ErrPermissionDenied)

	require.NoError(t, env.friendship.AcceptRequest("bob", reqs[0].ID))

	// 好友关系对两个方向都成立
	ab, err := env.friendship.IsFriend("alice", "bob")
	require.NoError(t, err)
	ba, err := env.friendship.IsFriend("bob", "alice")
	require.NoError(t, err)
	assert.True(t, ab)
	assert.True(t, ba)

	// 已处理的申请不能再处理
	assert.ErrorIs(t, env.friendship.AcceptRequest("bob", reqs[0].ID), util.ErrRequestHandled)

	// 已是好友后再次发申请
	assert.ErrorIs(t, env.friendship.SendRequest("alice", "bob"), util.ErrAlreadyFriends)
}

func TestAcceptRequestToleratesExistingEdges(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")

	t.Run("两条边都已存在", func(t *testing.T) {
		require.NoError(t, env.friendship.SendRequest("alice", "bob"))
		reqs, err := env.friendship.PendingRequests("bob")
		require.NoError(t, err)
		require.Len(t, reqs, 1)

		// 好友边先一步存在（并发或历史残留）时接受不能报错
		befriend(t, env, "alice", "bob")
		require.NoError(t, env.friendship.AcceptRequest("bob", reqs[0].ID))

		var count int64
		env.db.Model(&model.Friendship{}).Count(&count)
		assert.EqualValues(t, 2, count)

		req, err := env.friends.GetRequest(reqs[0].ID)
		require.NoError(t, err)
		assert.Equal(t, model.RequestAccepted, req.Status)
	})

	t.Run("只有一条边存在时补齐另一条", func(t *testing.T) {
		seedUser(t, env.db, "carol", "Carol Wang")
		require.NoError(t, env.friendship.SendRequest("alice", "carol"))
		reqs, err := env.friendship.PendingRequests("carol")
		require.NoError(t, err)
		require.Len(t, reqs, 1)

		require.NoError(t, env.db.Create(&model.Friendship{UserID: "alice", FriendID: "carol"}).Error)
		require.NoError(t, env.friendship.AcceptRequest("carol", reqs[0].ID))

		ca, err := env.friendship.IsFriend("carol", "alice")
		require.NoError(t, err)
		assert.True(t, ca)

		var count int64
		env.db.Model(&model.Friendship{}).
			Where("user_id IN ? AND friend_id IN ?", []string{"alice", "carol"}, []string{"alice", "carol"}).
			Count(&count)
		assert.EqualValues(t, 2, count)
	})
}

func TestRejectRequestBlocksResend(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")

	require.NoError(t, env.friendship.SendRequest("alice", "bob"))
	reqs, err := env.friendship.PendingRequests("bob")
	require.NoError(t, err)
	require.NoError(t, env.friendship.RejectRequest("bob", reqs[0].ID))

	// 被拒绝后永久拦截再次发送
	assert.ErrorIs(t, env.friendship.SendRequest("alice", "bob"), util.ErrRequestRejected)

	// 但对方仍可以主动发起
	assert.NoError(t, env.friendship.SendRequest("bob", "alice"))
}

func TestRemoveFriend(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")

	assert.ErrorIs(t, env.friendship.RemoveFriend("alice", "bob"), util.ErrNotFriends)

	befriend(t, env, "alice", "bob")
	require.NoError(t, env.friendship.RemoveFriend("alice", "bob"))

	// 两个方向的边都被删掉
	var count int64
	env.db.Model(&model.Friendship{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestSearchFriends(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")
	seedUser(t, env.db, "carol", "Carol Wang")

	befriend(t, env, "alice", "bob")
	befriend(t, env, "alice", "carol")

	all, err := env.friendship.SearchFriends("alice", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := env.friendship.SearchFriends("alice", "bob")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "bob", matched[0].ID)
}
