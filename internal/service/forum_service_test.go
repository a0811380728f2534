package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func newForumService(t *testing.T) (*ForumService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewForumService(repository.NewPostRepository(db), repository.NewCommentRepository(db))
	return svc, db
}

func claimsFor(user *model.User) *util.Claims {
	return &util.Claims{UserID: user.ID, Role: user.Role}
}

func TestUpdatePostPermissions(t *testing.T) {
	svc, db := newForumService(t)
	author := createTestUser(t, db, "alice", nil)
	stranger := createTestUser(t, db, "bob", nil)
	admin := createTestUser(t, db, "root", func(u *model.User) { u.Role = model.RoleAdmin })

	post, err := svc.CreatePost(author.ID, &PostRequest{Title: "求助", Content: "指针怎么用"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if _, err := svc.UpdatePost(claimsFor(stranger), post.ID, &PostRequest{Title: "x", Content: "y"}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.UpdatePost(claimsFor(author), post.ID, &PostRequest{Title: "已解决", Content: "谢谢"}); err != nil {
		t.Fatalf("author update: %v", err)
	}
	if _, err := svc.UpdatePost(claimsFor(admin), post.ID, &PostRequest{Title: "置顶", Content: "FAQ"}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestDeletePostCascadesComments(t *testing.T) {
	svc, db := newForumService(t)
	author := createTestUser(t, db, "alice", nil)

	post, err := svc.CreatePost(author.ID, &PostRequest{Title: "求助", Content: "内容"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if _, err := svc.CreateComment(author.ID, post.ID, &CommentRequest{Content: "自己顶一下"}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if err := svc.DeletePost(claimsFor(author), post.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	var count int64
	db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 0 {
		t.Fatalf("comment rows = %d, want 0 after post deletion", count)
	}
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	svc, db := newForumService(t)
	author := createTestUser(t, db, "alice", nil)

	if _, err := svc.CreateComment(author.ID, 999, &CommentRequest{Content: "hi"}); !errors.Is(err, util.ErrPostNotFound) {
		t.Fatalf("err = %v, want ErrPostNotFound", err)
	}
}
