package handler

import (
	"github.com/gin-gonic/gin"

	"issuehub/internal/api/middleware"
	"issuehub/internal/dto"
	"issuehub/internal/service"
	"issuehub/pkg/responses"
)

type MemberHandler struct {
	memberService service.MemberService
}

func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// Add 添加成员
// @Summary 按邮箱添加已注册用户为项目成员
// @Description 已是成员时覆盖其角色
// @Tags Member
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param request body dto.MemberAddRequest true "添加成员请求"
// @Success 200 {object} responses.OK
// @Failure 400 {object} responses.ErrorBody "last_maintainer"
// @Failure 403 {object} responses.ErrorBody
// @Failure 404 {object} responses.ErrorBody "user_not_found"
// @Router /api/projects/{id}/members [post]
func (h *MemberHandler) Add(c *gin.Context) {
	var param dto.IDParam
	if !bindURI(c, &param) {
		return
	}
	var req dto.MemberAddRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.memberService.Add(c.Request.Context(), middleware.CurrentUserID(c), param.ID, &req); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessOK(c)
}

// Onboard 导入新成员
// @Summary 创建新用户并加入项目
// @Tags Member
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param request body dto.MemberOnboardRequest true "导入成员请求"
// @Success 200 {object} dto.OnboardResponse
// @Failure 400 {object} responses.ErrorBody "email_taken"
// @Failure 403 {object} responses.ErrorBody
// @Router /api/projects/{id}/members/onboard [post]
func (h *MemberHandler) Onboard(c *gin.Context) {
	var param dto.IDParam
	if !bindURI(c, &param) {
		return
	}
	var req dto.MemberOnboardRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.memberService.Onboard(c.Request.Context(), middleware.CurrentUserID(c), param.ID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// List 成员列表
// @Summary 获取项目成员列表
// @Tags Member
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {array} dto.MemberResponse
// @Failure 403 {object} responses.ErrorBody
// @Router /api/projects/{id}/members [get]
func (h *MemberHandler) List(c *gin.Context) {
	var param dto.IDParam
	if !bindURI(c, &param) {
		return
	}

	members, err := h.memberService.List(c.Request.Context(), middleware.CurrentUserID(c), param.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, members)
}

// UpdateRole 修改成员角色
// @Summary 修改成员角色
// @Tags Member
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param user_id path int true "用户ID"
// @Param request body dto.MemberUpdateRequest true "角色"
// @Success 200 {object} responses.OK
// @Failure 400 {object} responses.ErrorBody "last_maintainer"
// @Failure 404 {object} responses.ErrorBody "member_not_found"
// @Router /api/projects/{id}/members/{user_id} [patch]
func (h *MemberHandler) UpdateRole(c *gin.Context) {
	var param dto.MemberParam
	if !bindURI(c, &param) {
		return
	}
	var req dto.MemberUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.memberService.UpdateRole(c.Request.Context(), middleware.CurrentUserID(c), param.ID, param.UserID, &req); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessOK(c)
}

// Remove 移除成员
// @Summary 移除项目成员
// @Description 不能移除项目的最后一个 maintainer
// @Tags Member
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param user_id path int true "用户ID"
// @Success 200 {object} responses.OK
// @Failure 400 {object} responses.ErrorBody "last_maintainer"
// @Failure 404 {object} responses.ErrorBody "member_not_found"
// @Router /api/projects/{id}/members/{user_id} [delete]
func (h *MemberHandler) Remove(c *gin.Context) {
	var param dto.MemberParam
	if !bindURI(c, &param) {
		return
	}

	if err := h.memberService.Remove(c.Request.Context(), middleware.CurrentUserID(c), param.ID, param.UserID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessOK(c)
}
