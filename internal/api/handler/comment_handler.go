package handler

import (
	"github.com/gin-gonic/gin"

	"issuehub/internal/api/middleware"
	"issuehub/internal/dto"
	"issuehub/internal/service"
	"issuehub/pkg/responses"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// List 评论列表
// @Summary 获取 issue 的评论
// @Tags Comment
// @Produce json
// @Security BearerAuth
// @Param id path int true "issue ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 403 {object} responses.ErrorBody
// @Failure 404 {object} responses.ErrorBody
// @Router /api/issues/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	var param dto.IDParam
	if !bindURI(c, &param) {
		return
	}

	comments, err := h.commentService.List(c.Request.Context(), middleware.CurrentUserID(c), param.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, comments)
}

// Add 发表评论
// @Summary 发表评论
// @Tags Comment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "issue ID"
// @Param request body dto.CreateCommentRequest true "评论内容"
// @Success 200 {object} dto.CommentResponse
// @Failure 403 {object} responses.ErrorBody
// @Failure 404 {object} responses.ErrorBody
// @Router /api/issues/{id}/comments [post]
func (h *CommentHandler) Add(c *gin.Context) {
	var param dto.IDParam
	if !bindURI(c, &param) {
		return
	}
	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Add(c.Request.Context(), middleware.CurrentUserID(c), param.ID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, comment)
}
