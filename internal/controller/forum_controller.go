package controller

import (
	"code_quest_backend/internal/service"
	"code_quest_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ForumController struct {
	ForumService *service.ForumService
}

func NewForumController(forumService *service.ForumService) *ForumController {
	return &ForumController{ForumService: forumService}
}

// CreatePost godoc
// @Summary 发布帖子
// @Tags 论坛
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param body body service.PostRequest true "帖子内容"
// @Success 201 {object} util.Response{data=model.Post} "创建成功"
// @Router /api/forum/posts [post]
func (c *ForumController) CreatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.ForumService.CreatePost(claims.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// ListPosts godoc
// @Summary 帖子列表
// @Tags 论坛
// @Produce  json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/forum/posts [get]
func (c *ForumController) ListPosts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))

	posts, total, err := c.ForumService.ListPosts(page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"posts": posts,
		"total": total,
		"page":  page,
	})
}

// GetPost godoc
// @Summary 帖子详情
// @Description 返回帖子及其全部评论
// @Tags 论坛
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "帖子ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/forum/posts/{id} [get]
func (c *ForumController) GetPost(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid post id")
		return
	}

	post, comments, err := c.ForumService.GetPost(id)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{
		"post":     post,
		"comments": comments,
	})
}

// UpdatePost godoc
// @Summary 编辑帖子
// @Description 仅作者本人或管理员可编辑
// @Tags 论坛
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "帖子ID"
// @Param body body service.PostRequest true "帖子内容"
// @Success 200 {object} util.Response{data=model.Post} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/forum/posts/{id} [put]
func (c *ForumController) UpdatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid post id")
		return
	}

	var req service.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.ForumService.UpdatePost(claims, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, post)
}

// DeletePost godoc
// @Summary 删除帖子
// @Description 连带删除帖子下的全部评论
// @Tags 论坛
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "帖子ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/forum/posts/{id} [delete]
func (c *ForumController) DeletePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid post id")
		return
	}

	if err := c.ForumService.DeletePost(claims, id); err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// CreateComment godoc
// @Summary 发表评论
// @Tags 论坛
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "帖子ID"
// @Param body body service.CommentRequest true "评论内容"
// @Success 201 {object} util.Response{data=model.Comment} "创建成功"
// @Router /api/forum/posts/{id}/comments [post]
func (c *ForumController) CreateComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	postID := util.MustParseUint(ctx.Param("id"))
	if postID == 0 {
		util.BadRequest(ctx, "invalid post id")
		return
	}

	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.ForumService.CreateComment(claims.UserID, postID, &req)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, comment)
}

// UpdateComment godoc
// @Summary 编辑评论
// @Description 仅作者本人或管理员可编辑
// @Tags 论坛
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "评论ID"
// @Param body body service.CommentRequest true "评论内容"
// @Success 200 {object} util.Response{data=model.Comment} "成功"
// @Router /api/forum/comments/{id} [put]
func (c *ForumController) UpdateComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid comment id")
		return
	}

	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.ForumService.UpdateComment(claims, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCommentNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, comment)
}

// DeleteComment godoc
// @Summary 删除评论
// @Tags 论坛
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "评论ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/forum/comments/{id} [delete]
func (c *ForumController) DeleteComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid comment id")
		return
	}

	if err := c.ForumService.DeleteComment(claims, id); err != nil {
		switch {
		case errors.Is(err, util.ErrCommentNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
