package service

import (
	"context"
	"mime/multipart"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/util"
)

type PostService struct {
	PostRepo   *repository.PostRepository
	FriendRepo *repository.FriendshipRepository
	Storage    *StorageService
}

func NewPostService(postRepo *repository.PostRepository, friendRepo *repository.FriendshipRepository, storage *StorageService) *PostService {
	return &PostService{
		PostRepo:   postRepo,
		FriendRepo: friendRepo,
		Storage:    storage,
	}
}

// PostView 帖子对外视图
type PostView struct {
	ID          uint   `json:"id"`
	UserID      string `json:"userId"`
	AuthorName  string `json:"authorName"`
	AuthorPic   string `json:"authorPic"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FileURL     string `json:"fileUrl,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func (s *PostService) toView(p *model.Post) PostView {
	return PostView{
		ID:          p.ID,
		UserID:      p.UserID,
		AuthorName:  p.User.FullName,
		AuthorPic:   util.FileURL(p.User.ProfilePic),
		Title:       p.Title,
		Description: p.Description,
		FileURL:     util.FileURL(p.FileName),
		CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Create 发帖，附件可选
func (s *PostService) Create(ctx context.Context, userID, title, description string, file *multipart.FileHeader) (*model.Post, error) {
	post := &model.Post{
		UserID:      userID,
		Title:       title,
		Description: description,
	}

	if file != nil {
		name, err := s.Storage.SaveAttachment(ctx, file)
		if err != nil {
			return nil, err
		}
		post.FileName = name
	}

	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// MyPosts 当前用户自己的帖子
func (s *PostService) MyPosts(userID string) ([]PostView, error) {
	posts, err := s.PostRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.toViews(posts), nil
}

// HomeFeed 首页信息流：自己 + 好友的帖子，时间倒序。
// 好友可见性在写查询时由作者集合保证，不做事后过滤。
func (s *PostService) HomeFeed(userID string) ([]PostView, error) {
	friendIDs, err := s.FriendRepo.GetFriendIDsCached(userID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(friendIDs, userID)

	posts, err := s.PostRepo.GetHomeFeed(authorIDs)
	if err != nil {
		return nil, err
	}
	return s.toViews(posts), nil
}

// UserPosts 某个用户主页的帖子列表
func (s *PostService) UserPosts(userID string) ([]PostView, error) {
	posts, err := s.PostRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.toViews(posts), nil
}

func (s *PostService) toViews(posts []model.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, s.toView(&posts[i]))
	}
	return views
}
