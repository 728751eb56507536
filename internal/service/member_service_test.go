package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuehub/internal/dto"
	"issuehub/internal/pkg/auth"
	pkgErrors "issuehub/pkg/errors"
)

func TestAddMemberUpsertsRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	p := env.project(t, alice, "CORE")

	env.addMember(t, alice, p.ID, bob, auth.RoleMember)
	env.addMember(t, alice, p.ID, bob, auth.RoleMaintainer)

	members, err := env.member.List(ctx, alice.ID, p.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, bob.ID, members[1].UserID)
	assert.Equal(t, "maintainer", members[1].Role)
	assert.Equal(t, "bob@example.com", members[1].Email)
	assert.Equal(t, "bob", members[1].Name)
}

func TestAddMemberErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")
	p := env.project(t, alice, "CORE")
	env.addMember(t, alice, p.ID, bob, auth.RoleMember)

	err := env.member.Add(ctx, alice.ID, p.ID, &dto.MemberAddRequest{Email: "nobody@example.com", Role: "member"})
	requireCode(t, err, pkgErrors.CodeUserNotFound)

	err = env.member.Add(ctx, bob.ID, p.ID, &dto.MemberAddRequest{Email: carol.Email, Role: "member"})
	requireDenied(t, err, auth.ReasonNotMaintainer)

	err = env.member.Add(ctx, carol.ID, p.ID, &dto.MemberAddRequest{Email: carol.Email, Role: "maintainer"})
	requireDenied(t, err, auth.ReasonNotMember)

	err = env.member.Add(ctx, alice.ID, p.ID+1, &dto.MemberAddRequest{Email: carol.Email, Role: "member"})
	requireCode(t, err, pkgErrors.CodeNotFound)
}

func TestAddMemberCannotDemoteLastMaintainer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	p := env.project(t, alice, "CORE")

	err := env.member.Add(ctx, alice.ID, p.ID, &dto.MemberAddRequest{Email: alice.Email, Role: "member"})
	requireCode(t, err, pkgErrors.CodeLastMaintainer)
	assert.EqualValues(t, 1, env.maintainerCount(t, p.ID))
}

func TestListMembersRequiresMaintainer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	p := env.project(t, alice, "CORE")
	env.addMember(t, alice, p.ID, bob, auth.RoleMember)

	_, err := env.member.List(ctx, bob.ID, p.ID)
	requireDenied(t, err, auth.ReasonNotMaintainer)
}

func TestOnboardMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	p := env.project(t, alice, "CORE")

	resp, err := env.member.Onboard(ctx, alice.ID, p.ID, &dto.MemberOnboardRequest{
		Name:     "Dave",
		Email:    "dave@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.True(t, resp.OK)

	m, err := env.members.Find(ctx, p.ID, resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleMember, m.Role)

	// 新用户可以用导入时的密码登录
	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "dave@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = env.member.Onboard(ctx, alice.ID, p.ID, &dto.MemberOnboardRequest{
		Name:     "Alice Again",
		Email:    alice.Email,
		Password: "secret1",
		Role:     "maintainer",
	})
	requireCode(t, err, pkgErrors.CodeEmailTaken)
}

func TestRemoveLastMaintainer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	p := env.project(t, alice, "CORE")
	env.addMember(t, alice, p.ID, bob, auth.RoleMember)

	err := env.member.Remove(ctx, alice.ID, p.ID, alice.ID)
	requireCode(t, err, pkgErrors.CodeLastMaintainer)
	assert.EqualValues(t, 1, env.maintainerCount(t, p.ID))

	_, err = env.members.Find(ctx, p.ID, alice.ID)
	require.NoError(t, err, "membership must be unchanged")

	require.NoError(t, env.member.Remove(ctx, alice.ID, p.ID, bob.ID))
	requireCode(t, env.member.Remove(ctx, alice.ID, p.ID, bob.ID), pkgErrors.CodeMemberNotFound)
}

func TestRemoveMaintainerWhenAnotherRemains(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	p := env.project(t, alice, "CORE")
	env.addMember(t, alice, p.ID, bob, auth.RoleMaintainer)

	require.NoError(t, env.member.Remove(ctx, bob.ID, p.ID, alice.ID))
	assert.EqualValues(t, 1, env.maintainerCount(t, p.ID))

	requireCode(t, env.member.Remove(ctx, bob.ID, p.ID, bob.ID), pkgErrors.CodeLastMaintainer)
}

func TestUpdateRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")
	p := env.project(t, alice, "CORE")
	env.addMember(t, alice, p.ID, bob, auth.RoleMember)

	requireCode(t,
		env.member.UpdateRole(ctx, alice.ID, p.ID, alice.ID, &dto.MemberUpdateRequest{Role: "member"}),
		pkgErrors.CodeLastMaintainer)

	requireCode(t,
		env.member.UpdateRole(ctx, alice.ID, p.ID, carol.ID, &dto.MemberUpdateRequest{Role: "member"}),
		pkgErrors.CodeMemberNotFound)

	requireDenied(t,
		env.member.UpdateRole(ctx, bob.ID, p.ID, bob.ID, &dto.MemberUpdateRequest{Role: "maintainer"}),
		auth.ReasonNotMaintainer)

	require.NoError(t, env.member.UpdateRole(ctx, alice.ID, p.ID, bob.ID, &dto.MemberUpdateRequest{Role: "maintainer"}))
	require.NoError(t, env.member.UpdateRole(ctx, bob.ID, p.ID, alice.ID, &dto.MemberUpdateRequest{Role: "member"}))
	assert.EqualValues(t, 1, env.maintainerCount(t, p.ID))
}

// 两个 maintainer 同时移除对方，只能有一个成功
func TestConcurrentRemoveKeepsOneMaintainer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	p := env.project(t, alice, "CORE")
	env.addMember(t, alice, p.ID, bob, auth.RoleMaintainer)

	pairs := [][2]int64{{alice.ID, bob.ID}, {bob.ID, alice.ID}}
	errs := make([]error, len(pairs))
	var wg sync.WaitGroup
	for i, pair := range pairs {
		wg.Add(1)
		go func(i int, actor, target int64) {
			defer wg.Done()
			errs[i] = env.member.Remove(ctx, actor, p.ID, target)
		}(i, pair[0], pair[1])
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		// 后执行的一方已不是成员，或者对方已是最后一个 maintainer
		assert.True(t,
			errors.Is(err, pkgErrors.ErrForbidden) || errors.Is(err, pkgErrors.ErrLastMaintainer),
			"unexpected error: %v", err)
	}
	assert.Equal(t, 1, ok)
	assert.EqualValues(t, 1, env.maintainerCount(t, p.ID))
}
