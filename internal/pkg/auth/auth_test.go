package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	maintainer = &Membership{Role: RoleMaintainer}
	member     = &Membership{Role: RoleMember}
)

func TestMatch(t *testing.T) {
	cases := []struct {
		have, need Permission
		want       bool
	}{
		{"*", "issue:create", true},
		{"issue:view", "issue:view", true},
		{"issue:view", "issue:edit", false},
		{"comment:*", "comment:create", true},
		{"comment:*", "issue:create", false},
		{"issue", "issue:view", false},
		{"issue:view:extra", "issue:view", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, match(c.have, c.need), "%s vs %s", c.have, c.need)
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("maintainer")
	assert.NoError(t, err)
	assert.Equal(t, RoleMaintainer, r)

	_, err = ParseRole("owner")
	assert.Error(t, err)
}

func TestCanCreateProject(t *testing.T) {
	assert.True(t, CanCreateProject(nil).Allowed, "no memberships bootstraps")
	assert.True(t, CanCreateProject([]Role{RoleMember, RoleMaintainer}).Allowed)
	assert.Equal(t, Deny(ReasonNotMaintainer), CanCreateProject([]Role{RoleMember, RoleMember}))
}

func TestMembershipGates(t *testing.T) {
	gates := map[string]func(*Membership) Decision{
		"view project":  CanViewProject,
		"view issue":    CanViewIssue,
		"list comments": CanListComments,
		"add comment":   CanAddComment,
	}
	for name, gate := range gates {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, Deny(ReasonNotMember), gate(nil))
			assert.True(t, gate(member).Allowed)
			assert.True(t, gate(maintainer).Allowed)
		})
	}
}

func TestMaintainerGates(t *testing.T) {
	gates := map[string]func(*Membership) Decision{
		"manage members": CanManageMembers,
		"delete project": CanDeleteProject,
		"create issue":   CanCreateIssue,
	}
	for name, gate := range gates {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, Deny(ReasonNotMember), gate(nil))
			assert.Equal(t, Deny(ReasonNotMaintainer), gate(member))
			assert.True(t, gate(maintainer).Allowed)
		})
	}
}

func TestCanUpdateIssue(t *testing.T) {
	cases := []struct {
		name string
		m    *Membership
		u    IssueUpdate
		want Decision
	}{
		{"outsider", nil, IssueUpdate{}, Deny(ReasonNotMember)},
		{"reporter member edits title", member, IssueUpdate{IsReporter: true}, Allow()},
		{"reporter member changes status", member, IssueUpdate{IsReporter: true, ChangesTriage: true}, Deny(ReasonNotMaintainer)},
		{"other member edits title", member, IssueUpdate{}, Deny(ReasonNotReporterOrMaintainer)},
		{"other member changes assignee", member, IssueUpdate{ChangesTriage: true}, Deny(ReasonNotMaintainer)},
		{"maintainer triage", maintainer, IssueUpdate{ChangesTriage: true}, Allow()},
		{"maintainer edits others issue", maintainer, IssueUpdate{}, Allow()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, CanUpdateIssue(c.m, c.u))
		})
	}
}

func TestCanDeleteIssue(t *testing.T) {
	assert.Equal(t, Deny(ReasonNotMember), CanDeleteIssue(nil, true))
	assert.True(t, CanDeleteIssue(member, true).Allowed)
	assert.Equal(t, Deny(ReasonNotReporterOrMaintainer), CanDeleteIssue(member, false))
	assert.True(t, CanDeleteIssue(maintainer, false).Allowed)
}

func TestCanRemoveMember(t *testing.T) {
	assert.Equal(t, Deny(ReasonNotMaintainer), CanRemoveMember(member, RoleMember, 2))
	assert.Equal(t, Deny(ReasonLastMaintainer), CanRemoveMember(maintainer, RoleMaintainer, 1))
	assert.True(t, CanRemoveMember(maintainer, RoleMaintainer, 2).Allowed)
	assert.True(t, CanRemoveMember(maintainer, RoleMember, 1).Allowed)
}

func TestCanChangeRole(t *testing.T) {
	assert.Equal(t, Deny(ReasonNotMember), CanChangeRole(nil, RoleMember, RoleMaintainer, 1))
	assert.Equal(t, Deny(ReasonLastMaintainer), CanChangeRole(maintainer, RoleMaintainer, RoleMember, 1))
	assert.True(t, CanChangeRole(maintainer, RoleMaintainer, RoleMember, 2).Allowed)
	assert.True(t, CanChangeRole(maintainer, RoleMember, RoleMaintainer, 1).Allowed)
	assert.True(t, CanChangeRole(maintainer, RoleMaintainer, RoleMaintainer, 1).Allowed)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", Allow().String())
	assert.Equal(t, "deny(last_maintainer)", Deny(ReasonLastMaintainer).String())
}
