package repository

import (
	"context"
	"fmt"
	"time"

	"acadlinker_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type FriendshipRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewFriendshipRepository(db *gorm.DB, rdb *redis.Client) *FriendshipRepository {
	return &FriendshipRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

// CreateFriendship 在同一事务里写入两条有向边，保证对称不变量
func (r *FriendshipRepository) CreateFriendship(userID, friendID string) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.Friendship{UserID: userID, FriendID: friendID}).Error; err != nil {
			return err
		}
		return tx.Create(&model.Friendship{UserID: friendID, FriendID: userID}).Error
	})

	if err == nil {
		r.invalidateFriendCache(userID, friendID)
	}
	return err
}

// AcceptRequest 在同一事务里把申请置为 accepted 并建立对称好友关系。
// 两条有向边插入前都先查重，已存在的边跳过，避免状态改了边却插不进去。
func (r *FriendshipRepository) AcceptRequest(requestID uint, senderID, receiverID string) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.FriendRequest{}).
			Where("id = ?", requestID).
			Update("status", model.RequestAccepted).Error; err != nil {
			return err
		}

		edges := [][2]string{{senderID, receiverID}, {receiverID, senderID}}
		for _, e := range edges {
			var count int64
			if err := tx.Model(&model.Friendship{}).
				Where("user_id = ? AND friend_id = ?", e[0], e[1]).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(&model.Friendship{UserID: e[0], FriendID: e[1]}).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err == nil {
		r.invalidateFriendCache(senderID, receiverID)
	}
	return err
}

// DeleteFriendship 同一事务里删除两个方向
func (r *FriendshipRepository) DeleteFriendship(userID, friendID string) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND friend_id = ?", userID, friendID).Delete(&model.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND friend_id = ?", friendID, userID).Delete(&model.Friendship{}).Error
	})

	if err == nil {
		r.invalidateFriendCache(userID, friendID)
	}
	return err
}

func (r *FriendshipRepository) invalidateFriendCache(ids ...string) {
	if r.Redis == nil {
		return
	}
	for _, id := range ids {
		r.Redis.Del(r.ctx, friendCacheKey(id))
	}
}

func friendCacheKey(userID string) string {
	return fmt.Sprintf("relation:friends:%s", userID)
}

func (r *FriendshipRepository) IsFriend(userID, friendID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error
	return count > 0, err
}

func (r *FriendshipRepository) GetFriends(userID string) ([]model.User, error) {
	var friends []model.User
	err := r.DB.Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", userID).
		Find(&friends).Error
	return friends, err
}

// GetFriendIDs 只获取好友的 ID 列表
func (r *FriendshipRepository) GetFriendIDs(userID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Friendship{}).
		Where("user_id = ?", userID).
		Pluck("friend_id", &ids).Error
	return ids, err
}

// GetFriendIDsCached 获取好友 ID 列表 (带缓存，Redis 不可用时直接回源)
func (r *FriendshipRepository) GetFriendIDsCached(userID string) ([]string, error) {
	if r.Redis == nil {
		return r.GetFriendIDs(userID)
	}

	key := friendCacheKey(userID)
	cached, err := r.Redis.SMembers(r.ctx, key).Result()
	if err == nil && len(cached) > 0 {
		ids := make([]string, 0, len(cached))
		for _, s := range cached {
			if s != "" && s != "-" {
				ids = append(ids, s)
			}
		}
		return ids, nil
	}

	// 缓存失效，回源数据库
	ids, err := r.GetFriendIDs(userID)
	if err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		pipe := r.Redis.Pipeline()
		for _, id := range ids {
			pipe.SAdd(r.ctx, key, id)
		}
		pipe.Expire(r.ctx, key, 24*time.Hour)
		pipe.Exec(r.ctx)
	} else {
		// 防止缓存穿透：存占位符并给较短的过期时间
		r.Redis.SAdd(r.ctx, key, "-")
		r.Redis.Expire(r.ctx, key, 5*time.Minute)
	}
	return ids, nil
}

func (r *FriendshipRepository) CreateRequest(req *model.FriendRequest) error {
	return r.DB.Create(req).Error
}

func (r *FriendshipRepository) GetRequest(id uint) (*model.FriendRequest, error) {
	var req model.FriendRequest
	err := r.DB.First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindRequestBetween 按 (sender, receiver) 有序对查最近一条指定状态的申请
func (r *FriendshipRepository) FindRequestBetween(senderID, receiverID string, statuses ...string) (*model.FriendRequest, error) {
	var req model.FriendRequest
	err := r.DB.Where("sender_id = ? AND receiver_id = ? AND status IN ?", senderID, receiverID, statuses).
		Order("created_at DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *FriendshipRepository) UpdateRequestStatus(id uint, status string) error {
	return r.DB.Model(&model.FriendRequest{}).Where("id = ?", id).Update("status", status).Error
}

func (r *FriendshipRepository) GetPendingRequests(userID string) ([]model.FriendRequest, error) {
	var reqs []model.FriendRequest
	err := r.DB.Preload("Sender").
		Where("receiver_id = ? AND status = ?", userID, model.RequestPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}
