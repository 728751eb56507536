package handler

import (
	"github.com/gin-gonic/gin"

	"issuehub/internal/api/middleware"
	"issuehub/internal/dto"
	"issuehub/internal/service"
	"issuehub/pkg/responses"
)

type IssueHandler struct {
	issueService service.IssueService
}

func NewIssueHandler(issueService service.IssueService) *IssueHandler {
	return &IssueHandler{
		issueService: issueService,
	}
}

// List issue列表
// @Summary 按条件查询项目 issue
// @Description 条件之间为 AND；先过滤排序，再分页
// @Tags Issue
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param q query string false "标题关键字（不区分大小写）"
// @Param status query string false "状态" Enums(open, in_progress, resolved, closed)
// @Param priority query string false "优先级" Enums(low, medium, high, critical)
// @Param assignee query int false "指派人ID"
// @Param sort query string false "排序" Enums(created_at, priority, status)
// @Param limit query int false "每页数量(1-100)" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} dto.IssueResponse
// @Failure 403 {object} responses.ErrorBody
// @Failure 422 {object} responses.ErrorBody
// @Router /api/projects/{id}/issues [get]
func (h *IssueHandler) List(c *gin.Context) {
	var param dto.IDParam
	if !bindURI(c, &param) {
		return
	}
	var query dto.IssueListQuery
	if !bindQuery(c, &query) {
		return
	}

	issues, err := h.issueService.List(c.Request.Context(), middleware.CurrentUserID(c), param.ID, &query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, issues)
}

// Create 创建issue
// @Summary 创建 issue
// @Tags Issue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param request body dto.CreateIssueRequest true "创建issue请求"
// @Success 200 {object} dto.IssueResponse
// @Failure 400 {object} responses.ErrorBody "invalid_assignee"
// @Failure 403 {object} responses.ErrorBody
// @Router /api/projects/{id}/issues [post]
func (h *IssueHandler) Create(c *gin.Context) {
	var param dto.IDParam
	if !bindURI(c, &param) {
		return
	}
	var req dto.CreateIssueRequest
	if !bindJSON(c, &req) {
		return
	}

	issue, err := h.issueService.Create(c.Request.Context(), middleware.CurrentUserID(c), param.ID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, issue)
}

// Get issue详情
// @Summary 获取 issue 详情
// @Tags Issue
// @Produce json
// @Security BearerAuth
// @Param id path int true "issue ID"
// @Success 200 {object} dto.IssueResponse
// @Failure 403 {object} responses.ErrorBody
// @Failure 404 {object} responses.ErrorBody
// @Router /api/issues/{id} [get]
func (h *IssueHandler) Get(c *gin.Context) {
	var param dto.IDParam
	if !bindURI(c, &param) {
		return
	}

	issue, err := h.issueService.Get(c.Request.Context(), middleware.CurrentUserID(c), param.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, issue)
}

// Update 部分更新issue
// @Summary 部分更新 issue
// @Description 只修改请求中出现的字段；description / assignee_id 传 null 表示清空
// @Tags Issue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "issue ID"
// @Param request body dto.UpdateIssueRequest true "更新字段"
// @Success 200 {object} dto.IssueResponse
// @Failure 400 {object} responses.ErrorBody "invalid_assignee"
// @Failure 403 {object} responses.ErrorBody
// @Failure 422 {object} responses.ErrorBody
// @Router /api/issues/{id} [patch]
func (h *IssueHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if !bindURI(c, &param) {
		return
	}
	var req dto.UpdateIssueRequest
	if !bindJSON(c, &req) {
		return
	}

	issue, err := h.issueService.Update(c.Request.Context(), middleware.CurrentUserID(c), param.ID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, issue)
}

// Delete 删除issue
// @Summary 删除 issue
// @Description 报告人或 maintainer 可删除，评论一并删除
// @Tags Issue
// @Produce json
// @Security BearerAuth
// @Param id path int true "issue ID"
// @Success 200 {object} responses.OK
// @Failure 403 {object} responses.ErrorBody
// @Failure 404 {object} responses.ErrorBody
// @Router /api/issues/{id} [delete]
func (h *IssueHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if !bindURI(c, &param) {
		return
	}

	if err := h.issueService.Delete(c.Request.Context(), middleware.CurrentUserID(c), param.ID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessOK(c)
}
