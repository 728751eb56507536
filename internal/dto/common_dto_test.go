package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuehub/internal/model"
)

func TestUpdateIssueRequestDistinguishesAbsentAndNull(t *testing.T) {
	var req UpdateIssueRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"in_progress","assignee_id":null}`), &req))

	assert.True(t, req.Status.Set)
	assert.Equal(t, model.IssueStatusInProgress, req.Status.Value)
	assert.True(t, req.AssigneeID.Set)
	assert.True(t, req.AssigneeID.Null)
	assert.False(t, req.Title.Set)
	assert.False(t, req.Description.Set)
	assert.True(t, req.HasChanges())
	assert.True(t, req.ChangesTriage())
	assert.Empty(t, req.Validate())
}

func TestUpdateIssueRequestEmpty(t *testing.T) {
	var req UpdateIssueRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.False(t, req.HasChanges())
	assert.False(t, req.ChangesTriage())
}

func TestUpdateIssueRequestValidate(t *testing.T) {
	var req UpdateIssueRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":null,"status":"done","priority":null}`), &req))

	errs := req.Validate()
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	assert.ElementsMatch(t, []string{"title", "status", "priority"}, fields)
}

func TestIssueListQueryLimit(t *testing.T) {
	q := IssueListQuery{}
	assert.Equal(t, 20, q.GetLimit())

	n := 500
	q.Limit = &n
	assert.Equal(t, 100, q.GetLimit())
}

func TestCreateIssueDefaultPriority(t *testing.T) {
	r := CreateIssueRequest{}
	assert.Equal(t, model.IssuePriorityMedium, r.GetPriority())
	r.Priority = "critical"
	assert.Equal(t, model.IssuePriorityCritical, r.GetPriority())
}
