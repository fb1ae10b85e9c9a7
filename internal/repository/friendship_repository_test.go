package repository

import (
	"testing"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/pkg/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupFriendshipRepo(t *testing.T) (*FriendshipRepository, *miniredis.Miniredis) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	for _, id := range []string{"alice", "bob", "carol"} {
		require.NoError(t, db.Create(&model.User{
			ID: id, Email: id + "@example.com", FullName: id,
		}).Error)
	}
	return NewFriendshipRepository(db, rdb), mr
}

func TestCreateFriendshipWritesBothDirections(t *testing.T) {
	repo, _ := setupFriendshipRepo(t)

	require.NoError(t, repo.CreateFriendship("alice", "bob"))

	ab, err := repo.IsFriend("alice", "bob")
	require.NoError(t, err)
	ba, err := repo.IsFriend("bob", "alice")
	require.NoError(t, err)
	assert.True(t, ab)
	assert.True(t, ba)
}

func TestDeleteFriendshipRemovesBothDirections(t *testing.T) {
	repo, _ := setupFriendshipRepo(t)

	require.NoError(t, repo.CreateFriendship("alice", "bob"))
	require.NoError(t, repo.DeleteFriendship("bob", "alice"))

	ab, err := repo.IsFriend("alice", "bob")
	require.NoError(t, err)
	ba, err := repo.IsFriend("bob", "alice")
	require.NoError(t, err)
	assert.False(t, ab)
	assert.False(t, ba)
}

func TestGetFriendIDsCached(t *testing.T) {
	repo, mr := setupFriendshipRepo(t)

	require.NoError(t, repo.CreateFriendship("alice", "bob"))
	require.NoError(t, repo.CreateFriendship("alice", "carol"))

	// 首次回源并写缓存
	ids, err := repo.GetFriendIDsCached("alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bob", "carol"}, ids)
	assert.True(t, mr.Exists("relation:friends:alice"))

	// 第二次命中缓存
	ids, err = repo.GetFriendIDsCached("alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bob", "carol"}, ids)
}

func TestFriendCacheInvalidatedOnChange(t *testing.T) {
	repo, mr := setupFriendshipRepo(t)

	require.NoError(t, repo.CreateFriendship("alice", "bob"))
	_, err := repo.GetFriendIDsCached("alice")
	require.NoError(t, err)
	require.True(t, mr.Exists("relation:friends:alice"))

	// 新增好友会把两个人的缓存一起失效
	require.NoError(t, repo.CreateFriendship("alice", "carol"))
	assert.False(t, mr.Exists("relation:friends:alice"))
	assert.False(t, mr.Exists("relation:friends:carol"))

	ids, err := repo.GetFriendIDsCached("alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bob", "carol"}, ids)
}

func TestGetFriendIDsCachedEmptyUsesPlaceholder(t *testing.T) {
	repo, mr := setupFriendshipRepo(t)

	ids, err := repo.GetFriendIDsCached("alice")
	require.NoError(t, err)
	assert.Empty(t, ids)

	// 占位符存在但不会当成好友返回
	require.True(t, mr.Exists("relation:friends:alice"))
	ids, err = repo.GetFriendIDsCached("alice")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGetFriendIDsCachedWithoutRedis(t *testing.T) {
	repo, _ := setupFriendshipRepo(t)
	repo.Redis = nil

	require.NoError(t, repo.CreateFriendship("alice", "bob"))
	ids, err := repo.GetFriendIDsCached("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, ids)
}

func TestFindRequestBetween(t *testing.T) {
	repo, _ := setupFriendshipRepo(t)

	require.NoError(t, repo.CreateRequest(&model.FriendRequest{
		SenderID: "alice", ReceiverID: "bob", Status: model.RequestPending,
	}))

	req, err := repo.FindRequestBetween("alice", "bob", model.RequestPending)
	require.NoError(t, err)
	assert.Equal(t, "alice", req.SenderID)

	// 方向有序，反过来查不到
	_, err = repo.FindRequestBetween("bob", "alice", model.RequestPending)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 状态过滤
	_, err = repo.FindRequestBetween("alice", "bob", model.RequestRejected)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
