package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"

	"gorm.io/gorm"
)

// ForumService 帖子与评论，编辑和删除只允许作者本人或管理员
type ForumService struct {
	PostRepo    *repository.PostRepository
	CommentRepo *repository.CommentRepository
}

func NewForumService(postRepo *repository.PostRepository, commentRepo *repository.CommentRepository) *ForumService {
	return &ForumService{
		PostRepo:    postRepo,
		CommentRepo: commentRepo,
	}
}

type PostRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

func (s *ForumService) CreatePost(authorID uint, req *PostRequest) (*model.Post, error) {
	post := &model.Post{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *ForumService) ListPosts(page, pageSize int) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.PostRepo.List(page, pageSize)
}

func (s *ForumService) GetPost(id uint) (*model.Post, []model.Comment, error) {
	post, err := s.PostRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, util.ErrPostNotFound
		}
		return nil, nil, err
	}
	comments, err := s.CommentRepo.FindByPost(id)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

func (s *ForumService) UpdatePost(actor *util.Claims, id uint, req *PostRequest) (*model.Post, error) {
	post, err := s.PostRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	if !canModerate(actor, post.AuthorID) {
		return nil, util.ErrPermissionDenied
	}

	post.Title = req.Title
	post.Content = req.Content
	if err := s.PostRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *ForumService) DeletePost(actor *util.Claims, id uint) error {
	post, err := s.PostRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrPostNotFound
		}
		return err
	}
	if !canModerate(actor, post.AuthorID) {
		return util.ErrPermissionDenied
	}
	return s.PostRepo.Delete(id)
}

func (s *ForumService) CreateComment(authorID, postID uint, req *CommentRequest) (*model.Comment, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  req.Content,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ForumService) UpdateComment(actor *util.Claims, id uint, req *CommentRequest) (*model.Comment, error) {
	comment, err := s.CommentRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCommentNotFound
		}
		return nil, err
	}
	if !canModerate(actor, comment.AuthorID) {
		return nil, util.ErrPermissionDenied
	}

	comment.Content = req.Content
	if err := s.CommentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ForumService) DeleteComment(actor *util.Claims, id uint) error {
	comment, err := s.CommentRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrCommentNotFound
		}
		return err
	}
	if !canModerate(actor, comment.AuthorID) {
		return util.ErrPermissionDenied
	}
	return s.CommentRepo.Delete(id)
}

func canModerate(actor *util.Claims, ownerID uint) bool {
	if actor == nil {
		return false
	}
	return actor.UserID == ownerID || actor.Role == model.RoleAdmin
}
