// Package auth 是项目级授权判定引擎。
//
// 所有判定函数都是纯函数：调用方负责加载 (actor, project) 的成员记录、是否为 issue 报告人、
// 项目维护者数量等事实，引擎只返回 Allow 或 Deny(reason)，不读写任何状态。
package auth

import (
	"fmt"
	"strings"
)

// Role 项目内角色
type Role string

const (
	RoleMember     Role = "member"
	RoleMaintainer Role = "maintainer"
)

// Valid 是否为合法角色
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleMaintainer
}

// ParseRole 解析角色字符串
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}

// Permission 内置权限
type Permission string

const (
	PermProjectView   Permission = "project:view"
	PermProjectDelete Permission = "project:delete"

	PermMemberManage Permission = "member:manage"

	PermIssueView   Permission = "issue:view"
	PermIssueCreate Permission = "issue:create"
	PermIssueTriage Permission = "issue:triage" // 修改 status / assignee
	PermIssueEdit   Permission = "issue:edit"   // 修改任意 issue 的普通字段
	PermIssueDelete Permission = "issue:delete" // 删除任意 issue

	PermCommentView   Permission = "comment:view"
	PermCommentCreate Permission = "comment:create"
)

// RolePermissions 每个角色拥有的权限集合，支持通配符
var RolePermissions = map[Role][]Permission{
	RoleMaintainer: {
		"*",
	},
	RoleMember: {
		"project:view",
		"issue:view",
		"comment:*",
	},
}

// Allows 判断角色是否拥有某权限
func (r Role) Allows(need Permission) bool {
	for _, p := range RolePermissions[r] {
		if match(p, need) {
			return true
		}
	}
	return false
}

// match 按段匹配，"*" 匹配剩余所有段
func match(have, need Permission) bool {
	if have == "*" || have == need {
		return true
	}

	haveParts := strings.Split(string(have), ":")
	needParts := strings.Split(string(need), ":")

	for i, part := range haveParts {
		if part == "*" {
			return true
		}
		if i >= len(needParts) || part != needParts[i] {
			return false
		}
	}
	return len(haveParts) == len(needParts)
}

// DenyReason 拒绝原因
type DenyReason string

const (
	ReasonNotMember               DenyReason = "not_member"
	ReasonNotMaintainer           DenyReason = "not_maintainer"
	ReasonNotReporterOrMaintainer DenyReason = "not_reporter_or_maintainer"
	ReasonLastMaintainer          DenyReason = "last_maintainer"
)

// Decision 判定结果
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Allow 放行
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny 拒绝
func Deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

func (d Decision) String() string {
	if d.Allowed {
		return "allow"
	}
	return "deny(" + string(d.Reason) + ")"
}

// Membership 调用方加载的成员事实；nil 表示不是项目成员
type Membership struct {
	Role Role
}

// Require 要求成员身份并拥有指定权限
func Require(m *Membership, perm Permission) Decision {
	if m == nil {
		return Deny(ReasonNotMember)
	}
	if !m.Role.Allows(perm) {
		return Deny(ReasonNotMaintainer)
	}
	return Allow()
}

// CanCreateProject 在任何项目都没有成员身份，或至少在一个项目中是 maintainer
func CanCreateProject(roles []Role) Decision {
	if len(roles) == 0 {
		return Allow()
	}
	for _, r := range roles {
		if r == RoleMaintainer {
			return Allow()
		}
	}
	return Deny(ReasonNotMaintainer)
}

// CanViewProject 成员可查看项目、issue、评论
func CanViewProject(m *Membership) Decision {
	return Require(m, PermProjectView)
}

// CanDeleteProject 删除项目及其下所有数据
func CanDeleteProject(m *Membership) Decision {
	return Require(m, PermProjectDelete)
}

// CanManageMembers 添加/导入/列出/修改/移除成员
func CanManageMembers(m *Membership) Decision {
	return Require(m, PermMemberManage)
}

// CanCreateIssue 创建 issue
func CanCreateIssue(m *Membership) Decision {
	return Require(m, PermIssueCreate)
}

// CanViewIssue 查看 issue 列表与详情
func CanViewIssue(m *Membership) Decision {
	return Require(m, PermIssueView)
}

// CanListComments 查看评论
func CanListComments(m *Membership) Decision {
	return Require(m, PermCommentView)
}

// CanAddComment 发表评论
func CanAddComment(m *Membership) Decision {
	return Require(m, PermCommentCreate)
}

// IssueUpdate 更新涉及的字段
type IssueUpdate struct {
	IsReporter bool
	// ChangesTriage 请求中携带了 status 或 assignee_id
	ChangesTriage bool
}

// CanUpdateIssue 修改 status/assignee 需要 maintainer；
// 其他字段需要是报告人或 maintainer，既不是报告人也不是 maintainer 的成员不能做任何修改
func CanUpdateIssue(m *Membership, u IssueUpdate) Decision {
	if m == nil {
		return Deny(ReasonNotMember)
	}
	if u.ChangesTriage && !m.Role.Allows(PermIssueTriage) {
		return Deny(ReasonNotMaintainer)
	}
	if !u.IsReporter && !m.Role.Allows(PermIssueEdit) {
		return Deny(ReasonNotReporterOrMaintainer)
	}
	return Allow()
}

// CanDeleteIssue 报告人或 maintainer
func CanDeleteIssue(m *Membership, isReporter bool) Decision {
	if m == nil {
		return Deny(ReasonNotMember)
	}
	if !isReporter && !m.Role.Allows(PermIssueDelete) {
		return Deny(ReasonNotReporterOrMaintainer)
	}
	return Allow()
}

// CanRemoveMember 移除成员；目标是 maintainer 且项目仅剩一个 maintainer 时拒绝
func CanRemoveMember(actor *Membership, target Role, maintainerCount int64) Decision {
	if d := CanManageMembers(actor); !d.Allowed {
		return d
	}
	if target == RoleMaintainer && maintainerCount <= 1 {
		return Deny(ReasonLastMaintainer)
	}
	return Allow()
}

// CanChangeRole 修改成员角色；把最后一个 maintainer 降级同样会使项目失去 maintainer
func CanChangeRole(actor *Membership, current, next Role, maintainerCount int64) Decision {
	if d := CanManageMembers(actor); !d.Allowed {
		return d
	}
	if current == RoleMaintainer && next != RoleMaintainer && maintainerCount <= 1 {
		return Deny(ReasonLastMaintainer)
	}
	return Allow()
}
