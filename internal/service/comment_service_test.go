package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuehub/internal/dto"
	"issuehub/internal/model"
	"issuehub/internal/pkg/auth"
	pkgErrors "issuehub/pkg/errors"
)

func TestComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")
	p := env.project(t, alice, "CORE")
	env.addMember(t, alice, p.ID, bob, auth.RoleMember)
	issue := env.newIssue(t, alice, p.ID, "discuss", model.IssuePriorityMedium)

	first, err := env.comment.Add(ctx, bob.ID, issue.ID, &dto.CreateCommentRequest{Body: "first"})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, first.AuthorID)
	assert.Equal(t, issue.ID, first.IssueID)

	_, err = env.comment.Add(ctx, alice.ID, issue.ID, &dto.CreateCommentRequest{Body: "second"})
	require.NoError(t, err)

	list, err := env.comment.List(ctx, bob.ID, issue.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Body)
	assert.Equal(t, "second", list[1].Body)

	_, err = env.comment.Add(ctx, carol.ID, issue.ID, &dto.CreateCommentRequest{Body: "drive-by"})
	requireDenied(t, err, auth.ReasonNotMember)

	_, err = env.comment.List(ctx, carol.ID, issue.ID)
	requireDenied(t, err, auth.ReasonNotMember)

	_, err = env.comment.List(ctx, alice.ID, issue.ID+100)
	requireCode(t, err, pkgErrors.CodeNotFound)
}
