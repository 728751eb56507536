package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuehub/internal/model"
	"issuehub/internal/pkg/auth"
	"issuehub/internal/pkg/database/dbtest"
	pkgErrors "issuehub/pkg/errors"
)

func TestMemberLedger(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	alice := &model.User{Name: "alice", Email: "alice@example.com", PasswordHash: "-"}
	bob := &model.User{Name: "bob", Email: "bob@example.com", PasswordHash: "-"}
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	project := &model.Project{Name: "Core", Key: "CORE"}
	require.NoError(t, NewProjectRepository(db).Create(ctx, project))

	repo := NewMemberRepository(db)
	require.NoError(t, repo.Upsert(ctx, project.ID, alice.ID, auth.RoleMaintainer))
	require.NoError(t, repo.Upsert(ctx, project.ID, bob.ID, auth.RoleMember))
	require.NoError(t, repo.Upsert(ctx, project.ID, bob.ID, auth.RoleMaintainer))

	members, err := repo.ListByProject(ctx, project.ID, WithPreload("User"))
	require.NoError(t, err)
	require.Len(t, members, 2, "upsert must not duplicate the pair")
	assert.Equal(t, auth.RoleMaintainer, members[1].Role)
	require.NotNil(t, members[1].User)
	assert.Equal(t, "bob", members[1].User.Name)

	count, err := repo.CountMaintainers(ctx, project.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, repo.Delete(ctx, project.ID, bob.ID))
	_, err = repo.Find(ctx, project.ID, bob.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, project.ID, bob.ID), pkgErrors.ErrRecordNotFound)

	byUser, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, project.ID, byUser[0].ProjectID)
}

func TestUniqueConstraints(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	require.NoError(t, users.Create(ctx, &model.User{Name: "a", Email: "dup@example.com", PasswordHash: "-"}))
	err := users.Create(ctx, &model.User{Name: "b", Email: "dup@example.com", PasswordHash: "-"})
	assert.ErrorIs(t, err, pkgErrors.ErrEmailTaken)

	projects := NewProjectRepository(db)
	require.NoError(t, projects.Create(ctx, &model.Project{Name: "a", Key: "K"}))
	err = projects.Create(ctx, &model.Project{Name: "b", Key: "K"})
	assert.ErrorIs(t, err, pkgErrors.ErrProjectKeyTaken)
}

func TestListByMemberRole(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	alice := &model.User{Name: "alice", Email: "alice@example.com", PasswordHash: "-"}
	require.NoError(t, NewUserRepository(db).Create(ctx, alice))

	projects := NewProjectRepository(db)
	members := NewMemberRepository(db)
	for _, key := range []string{"A", "B"} {
		require.NoError(t, projects.Create(ctx, &model.Project{Name: key, Key: key}))
	}
	require.NoError(t, members.Upsert(ctx, 1, alice.ID, auth.RoleMaintainer))
	require.NoError(t, members.Upsert(ctx, 2, alice.ID, auth.RoleMember))

	all, err := projects.ListByMember(ctx, alice.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	role := auth.RoleMaintainer
	maintained, err := projects.ListByMember(ctx, alice.ID, &role)
	require.NoError(t, err)
	require.Len(t, maintained, 1)
	assert.Equal(t, "A", maintained[0].Key)
}
