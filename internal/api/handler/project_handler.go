package handler

import (
	"github.com/gin-gonic/gin"

	"issuehub/internal/api/middleware"
	"issuehub/internal/dto"
	"issuehub/internal/service"
	"issuehub/pkg/responses"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Create 创建项目
// @Summary 创建项目
// @Description 创建者自动成为 maintainer；已有成员身份但不是任何项目 maintainer 的用户不能创建
// @Tags Project
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "创建项目请求"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} responses.ErrorBody "project_key_taken"
// @Failure 403 {object} responses.ErrorBody "forbidden"
// @Router /api/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, project)
}

// List 我参与的项目
// @Summary 获取当前用户参与的项目
// @Tags Project
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProjectResponse
// @Router /api/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, projects)
}

// ListMaintained 我维护的项目
// @Summary 获取当前用户作为 maintainer 的项目
// @Tags Project
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProjectResponse
// @Router /api/projects/maintained [get]
func (h *ProjectHandler) ListMaintained(c *gin.Context) {
	projects, err := h.projectService.ListMaintained(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, projects)
}

// Get 项目详情
// @Summary 获取项目详情
// @Tags Project
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 403 {object} responses.ErrorBody
// @Failure 404 {object} responses.ErrorBody
// @Router /api/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	var param dto.IDParam
	if !bindURI(c, &param) {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), middleware.CurrentUserID(c), param.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, project)
}

// Delete 删除项目
// @Summary 删除项目
// @Description 级联删除成员、issue 与评论
// @Tags Project
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} responses.OK
// @Failure 403 {object} responses.ErrorBody
// @Failure 404 {object} responses.ErrorBody
// @Router /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if !bindURI(c, &param) {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), middleware.CurrentUserID(c), param.ID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessOK(c)
}
