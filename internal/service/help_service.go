package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/util"

	"gorm.io/gorm"
)

const (
	helpFeedLimit    = 20
	acceptReputation = 10
)

// HelpService 求助问答板。核心约束：
//   - 同一用户同时只能有一条 open 的求助
//   - 不能解答自己的求助
//   - 采纳是终态：求助转 solved，解答者 +10 声望
type HelpService struct {
	HelpRepo *repository.HelpRepository
	UserRepo *repository.UserRepository
	Storage  *StorageService
	Notifier *NotificationService
	DB       *gorm.DB
}

func NewHelpService(helpRepo *repository.HelpRepository, userRepo *repository.UserRepository, storage *StorageService, notifier *NotificationService, db *gorm.DB) *HelpService {
	return &HelpService{
		HelpRepo: helpRepo,
		UserRepo: userRepo,
		Storage:  storage,
		Notifier: notifier,
		DB:       db,
	}
}

// CreateHelpInput 发布求助
type CreateHelpInput struct {
	Title       string
	Description string
	GithubLink  string
	Tags        string
	Image       *multipart.FileHeader
}

// Create 发布求助，报错截图必传
func (s *HelpService) Create(ctx context.Context, userID string, in CreateHelpInput) (*model.HelpRequest, error) {
	hasOpen, err := s.HelpRepo.HasOpenRequest(userID)
	if err != nil {
		return nil, err
	}
	if hasOpen {
		return nil, util.ErrHelpOpenExists
	}

	if in.Image == nil {
		return nil, util.ErrImageRequired
	}
	imageName, err := s.Storage.SaveImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	req := &model.HelpRequest{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		GithubLink:  in.GithubLink,
		ImageURL:    imageName,
		Tags:        in.Tags,
	}
	if err := s.HelpRepo.Create(req); err != nil {
		return nil, err
	}

	now := time.Now()
	if user, err := s.UserRepo.FindByID(userID); err == nil {
		user.LastHelpRequestAt = &now
		s.UserRepo.Save(user)
	}
	return req, nil
}

// HelpView 求助列表/详情视图
type HelpView struct {
	ID          uint     `json:"id"`
	UserID      string   `json:"userId"`
	AskerName   string   `json:"askerName"`
	AskerPic    string   `json:"askerPic"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	GithubLink  string   `json:"githubLink,omitempty"`
	ImageURL    string   `json:"imageUrl"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"createdAt"`
}

// SolutionView 解答视图
type SolutionView struct {
	ID          uint   `json:"id"`
	SolverID    string `json:"solverId"`
	SolverName  string `json:"solverName"`
	SolverPic   string `json:"solverPic"`
	Content     string `json:"content"`
	CodeSnippet string `json:"codeSnippet,omitempty"`
	IsAccepted  bool   `json:"isAccepted"`
	CreatedAt   string `json:"createdAt"`
}

// HelpDetail 详情 = 求助 + 解答列表 + 是否本人发布
type HelpDetail struct {
	HelpView
	Solutions []SolutionView `json:"solutions"`
	IsOwner   bool           `json:"isOwner"`
}

func (s *HelpService) toView(req *model.HelpRequest) (HelpView, error) {
	view := HelpView{
		ID:          req.ID,
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		GithubLink:  req.GithubLink,
		ImageURL:    util.FileURL(req.ImageURL),
		Tags:        util.SplitTags(req.Tags),
		Status:      req.Status,
		CreatedAt:   req.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	asker, err := s.UserRepo.FindByID(req.UserID)
	if err != nil {
		return view, err
	}
	view.AskerName = asker.FullName
	view.AskerPic = util.FileURL(asker.ProfilePic)
	return view, nil
}

// Feed 求助广场：他人的 open 求助，最多 20 条
func (s *HelpService) Feed(userID string) ([]HelpView, error) {
	reqs, err := s.HelpRepo.GetOpenFeed(userID, helpFeedLimit)
	if err != nil {
		return nil, err
	}
	views := make([]HelpView, 0, len(reqs))
	for i := range reqs {
		v, err := s.toView(&reqs[i])
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// Detail 求助详情，解答里已采纳的排最前
func (s *HelpService) Detail(viewerID string, id uint) (*HelpDetail, error) {
	req, err := s.HelpRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrHelpNotFound
		}
		return nil, err
	}

	view, err := s.toView(req)
	if err != nil {
		return nil, err
	}

	sols, err := s.HelpRepo.GetSolutions(id)
	if err != nil {
		return nil, err
	}

	solViews := make([]SolutionView, 0, len(sols))
	for _, sol := range sols {
		sv := SolutionView{
			ID:          sol.ID,
			SolverID:    sol.SolverID,
			Content:     sol.Content,
			CodeSnippet: sol.CodeSnippet,
			IsAccepted:  sol.IsAccepted,
			CreatedAt:   sol.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if solver, err := s.UserRepo.FindByID(sol.SolverID); err == nil {
			sv.SolverName = solver.FullName
			sv.SolverPic = util.FileURL(solver.ProfilePic)
		}
		solViews = append(solViews, sv)
	}

	return &HelpDetail{
		HelpView:  view,
		Solutions: solViews,
		IsOwner:   req.UserID == viewerID,
	}, nil
}

// Solve 提交解答。限制：不是自己的求助，且求助仍是 open
func (s *HelpService) Solve(userID string, requestID uint, content, codeSnippet string) (*model.Solution, error) {
	req, err := s.HelpRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrHelpNotFound
		}
		return nil, err
	}
	if req.UserID == userID {
		return nil, util.ErrSolveOwnRequest
	}
	if req.Status != model.HelpOpen {
		return nil, util.ErrAlreadySolved
	}

	sol := &model.Solution{
		RequestID:   requestID,
		SolverID:    userID,
		Content:     content,
		CodeSnippet: codeSnippet,
	}
	if err := s.HelpRepo.CreateSolution(sol); err != nil {
		return nil, err
	}

	if solver, err := s.UserRepo.FindByID(userID); err == nil {
		s.Notifier.Notify(req.UserID,
			fmt.Sprintf("%s 回答了你的求助「%s」", solver.FullName, req.Title),
			fmt.Sprintf("/help/%d", req.ID))
	}
	return sol, nil
}

// AcceptSolution 采纳解答。仅求助发布者可采纳；求助必须还是 open。
// 同一事务内：标记解答已采纳、求助转 solved、解答者加声望。
func (s *HelpService) AcceptSolution(userID string, solutionID uint) error {
	sol, err := s.HelpRepo.GetSolution(solutionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSolutionNotFound
		}
		return err
	}

	req, err := s.HelpRepo.FindByID(sol.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrHelpNotFound
		}
		return err
	}
	if req.UserID != userID {
		return util.ErrPermissionDenied
	}
	if req.Status != model.HelpOpen {
		return util.ErrAlreadySolved
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.HelpRepo.MarkSolutionAccepted(tx, sol.ID); err != nil {
			return err
		}
		if err := s.HelpRepo.UpdateStatus(tx, req.ID, model.HelpSolved); err != nil {
			return err
		}
		return s.UserRepo.AddReputation(tx, sol.SolverID, acceptReputation)
	})
	if err != nil {
		return err
	}

	s.Notifier.Notify(sol.SolverID,
		fmt.Sprintf("你的解答被采纳，声望 +%d", acceptReputation),
		fmt.Sprintf("/help/%d", req.ID))
	return nil
}
