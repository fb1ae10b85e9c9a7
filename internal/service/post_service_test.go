package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostService(t *testing.T, env *testEnv) *PostService {
	t.Helper()
	return NewPostService(env.posts, env.friends, newTestStorage(t))
}

func TestHomeFeedVisibility(t *testing.T) {
	env := newTestEnv(t)
	svc := newPostService(t, env)
	ctx := context.Background()

	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")
	seedUser(t, env.db, "carol", "Carol Wang")

	// alice 和 bob 是好友，carol 与两人都不是
	befriend(t, env, "alice", "bob")

	_, err := svc.Create(ctx, "alice", "alice post", "", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", "bob post", "", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "carol", "carol post", "", nil)
	require.NoError(t, err)

	feed, err := svc.HomeFeed("alice")
	require.NoError(t, err)
	require.Len(t, feed, 2)
	for _, p := range feed {
		assert.NotEqual(t, "carol", p.UserID)
	}

	// carol 没有好友，只能看到自己的帖子
	feed, err = svc.HomeFeed("carol")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "carol post", feed[0].Title)
}

func TestHomeFeedOrder(t *testing.T) {
	env := newTestEnv(t)
	svc := newPostService(t, env)
	ctx := context.Background()

	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")
	befriend(t, env, "alice", "bob")

	first, err := svc.Create(ctx, "alice", "first", "", nil)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "bob", "second", "", nil)
	require.NoError(t, err)

	// 人为拉开时间差，保证倒序结果稳定
	env.db.Model(first).Update("created_at", "2025-01-01 10:00:00")
	env.db.Model(second).Update("created_at", "2025-01-02 10:00:00")

	feed, err := svc.HomeFeed("alice")
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "second", feed[0].Title)
	assert.Equal(t, "first", feed[1].Title)
}

func TestMyPostsOnlyMine(t *testing.T) {
	env := newTestEnv(t)
	svc := newPostService(t, env)
	ctx := context.Background()

	seedUser(t, env.db, "alice", "Alice Chen")
	seedUser(t, env.db, "bob", "Bob Li")

	_, err := svc.Create(ctx, "alice", "mine", "hello", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", "not mine", "", nil)
	require.NoError(t, err)

	posts, err := svc.MyPosts("alice")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "mine", posts[0].Title)
	assert.Equal(t, "Alice Chen", posts[0].AuthorName)
}
