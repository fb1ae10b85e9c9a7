package repository

import (
	"acadlinker_backend/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id uint) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("User").First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByUser 某个用户的全部帖子，新的在前
func (r *PostRepository) GetByUser(userID string) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// GetHomeFeed 首页信息流：作者集合 = 好友 + 自己，严格按时间倒序
func (r *PostRepository) GetHomeFeed(authorIDs []string) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.Preload("User").
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}
