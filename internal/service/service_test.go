package service

import (
	"testing"

	"acadlinker_backend/internal/config"
	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 测试共用的内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, name string) *model.User {
	t.Helper()
	user := &model.User{
		ID:       id,
		Email:    id + "@example.com",
		FullName: name,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newTestStorage(t *testing.T) *StorageService {
	t.Helper()
	return &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{LocalPath: t.TempDir()},
	}}
}

type testEnv struct {
	db         *gorm.DB
	users      *repository.UserRepository
	friends    *repository.FriendshipRepository
	posts      *repository.PostRepository
	messages   *repository.MessageRepository
	notifs     *repository.NotificationRepository
	teams      *repository.TeamRepository
	tasks      *repository.TaskRepository
	help       *repository.HelpRepository
	notifier   *NotificationService
	friendship *FriendshipService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	env := &testEnv{
		db:       db,
		users:    repository.NewUserRepository(db),
		friends:  repository.NewFriendshipRepository(db, nil),
		posts:    repository.NewPostRepository(db),
		messages: repository.NewMessageRepository(db),
		notifs:   repository.NewNotificationRepository(db),
		teams:    repository.NewTeamRepository(db),
		tasks:    repository.NewTaskRepository(db),
		help:     repository.NewHelpRepository(db),
	}
	env.notifier = NewNotificationService(env.notifs)
	env.friendship = NewFriendshipService(env.friends, env.users, env.notifier)
	return env
}

// befriend 直接建立好友关系，跳过申请流程
func befriend(t *testing.T, env *testEnv, a, b string) {
	t.Helper()
	require.NoError(t, env.friends.CreateFriendship(a, b))
}
