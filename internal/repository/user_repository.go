package repository

import (
	"acadlinker_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureUser 幂等补建本地用户行：外部身份服务认得该用户但本地缺行时创建。
// 并发的首次请求可能同时走到这里，FirstOrCreate 把竞态交给唯一约束兜底。
func (r *UserRepository) EnsureUser(user *model.User) error {
	return r.DB.Where("id = ?", user.ID).FirstOrCreate(user).Error
}

func (r *UserRepository) Save(user *model.User) error {
	return r.DB.Save(user).Error
}

// SearchUsers 按姓名/邮箱模糊搜索，排除自己
func (r *UserRepository) SearchUsers(selfID, query string, limit int) ([]model.User, error) {
	var users []model.User
	searchTerm := "%" + query + "%"
	err := r.DB.Where("id <> ?", selfID).
		Where("full_name LIKE ? OR email LIKE ?", searchTerm, searchTerm).
		Limit(limit).
		Find(&users).Error
	return users, err
}

// SearchBySkills 好友搜索：姓名或技能匹配
func (r *UserRepository) SearchBySkills(selfID, query string, limit int) ([]model.User, error) {
	var users []model.User
	searchTerm := "%" + query + "%"
	err := r.DB.Where("id <> ?", selfID).
		Where("full_name LIKE ? OR skills LIKE ?", searchTerm, searchTerm).
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) ListAll() ([]model.User, error) {
	var users []model.User
	err := r.DB.Find(&users).Error
	return users, err
}

// AddReputation 声望只增不减，当前唯一入口是解答被采纳
func (r *UserRepository) AddReputation(tx *gorm.DB, userID string, points int) error {
	return tx.Model(&model.User{}).
		Where("id = ?", userID).
		Update("reputation_points", gorm.Expr("reputation_points + ?", points)).Error
}
