package repository

import (
	"acadlinker_backend/internal/model"

	"gorm.io/gorm"
)

type HelpRepository struct {
	DB *gorm.DB
}

func NewHelpRepository(db *gorm.DB) *HelpRepository {
	return &HelpRepository{DB: db}
}

func (r *HelpRepository) Create(req *model.HelpRequest) error {
	return r.DB.Create(req).Error
}

func (r *HelpRepository) FindByID(id uint) (*model.HelpRequest, error) {
	var req model.HelpRequest
	err := r.DB.First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// HasOpenRequest 一个用户同时最多只能有一条 open 的求助
func (r *HelpRepository) HasOpenRequest(userID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.HelpRequest{}).
		Where("user_id = ? AND status = ?", userID, model.HelpOpen).
		Count(&count).Error
	return count > 0, err
}

// GetOpenFeed 他人的求助广场，最多 limit 条，新的在前
func (r *HelpRepository) GetOpenFeed(excludeUserID string, limit int) ([]model.HelpRequest, error) {
	var reqs []model.HelpRequest
	err := r.DB.Where("status = ? AND user_id <> ?", model.HelpOpen, excludeUserID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reqs).Error
	return reqs, err
}

func (r *HelpRepository) UpdateStatus(tx *gorm.DB, id uint, status string) error {
	return tx.Model(&model.HelpRequest{}).Where("id = ?", id).Update("status", status).Error
}

// --- 解答 ---

func (r *HelpRepository) CreateSolution(sol *model.Solution) error {
	return r.DB.Create(sol).Error
}

func (r *HelpRepository) GetSolution(id uint) (*model.Solution, error) {
	var sol model.Solution
	err := r.DB.First(&sol, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sol, nil
}

// GetSolutions 已采纳的排最前，其余按时间正序
func (r *HelpRepository) GetSolutions(requestID uint) ([]model.Solution, error) {
	var sols []model.Solution
	err := r.DB.Where("request_id = ?", requestID).
		Order("is_accepted DESC, created_at ASC").
		Find(&sols).Error
	return sols, err
}

func (r *HelpRepository) MarkSolutionAccepted(tx *gorm.DB, id uint) error {
	return tx.Model(&model.Solution{}).Where("id = ?", id).Update("is_accepted", true).Error
}
