package utils

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name  string `validate:"required,min=2"`
	Email string `validate:"required,email"`
	Role  string `validate:"omitempty,oneof=member maintainer"`
}

func TestValidationDetails(t *testing.T) {
	err := validator.New().Struct(signup{Name: "x", Email: "nope", Role: "owner"})
	require.Error(t, err)

	details := ValidationDetails(err)
	assert.Equal(t, []FieldError{
		{Field: "Name", Message: "field 'Name' must be at least 2"},
		{Field: "Email", Message: "field 'Email' must be a valid email address"},
		{Field: "Role", Message: "field 'Role' must be one of: member maintainer"},
	}, details)
}

func TestValidationDetailsJSON(t *testing.T) {
	var v struct {
		Limit int `json:"limit"`
	}
	err := json.Unmarshal([]byte(`{"limit":"ten"}`), &v)
	assert.Equal(t, []FieldError{{Field: "limit", Message: "field 'limit' should be int"}}, ValidationDetails(err))

	err = json.Unmarshal([]byte(`{`), &v)
	assert.Equal(t, []FieldError{{Message: "invalid JSON format"}}, ValidationDetails(err))

	assert.Nil(t, ValidationDetails(nil))
}
