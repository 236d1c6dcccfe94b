package validate

import (
	"strings"
	"testing"

	"vidtube/pkg/errs"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	Username string  `json:"username" validate:"required,min=3,max=30"`
	Email    string  `json:"email" validate:"required,email"`
	Duration float64 `json:"duration" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Struct(&signup{Username: "alice", Email: "a@example.com"}))
	})

	t.Run("details use json names", func(t *testing.T) {
		err := Struct(&signup{Username: "al", Email: "nope", Duration: -1})
		e := errs.As(err)
		assert.Equal(t, errs.KindValidation, e.Kind)
		assert.ElementsMatch(t, []string{
			"username must be at least 3 characters",
			"email must be a valid email",
			"duration must be at least 0",
		}, e.Details)
	})

	t.Run("required", func(t *testing.T) {
		e := errs.As(Struct(&signup{}))
		assert.Contains(t, e.Details, "username is required")
		assert.Contains(t, e.Details, "email is required")
	})
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("content", "hello", "required,max=280"))

	e := errs.As(Var("content", strings.Repeat("x", 281), "required,max=280"))
	assert.Equal(t, errs.KindValidation, e.Kind)
	assert.Equal(t, []string{"content must be at most 280 characters"}, e.Details)

	e = errs.As(Var("title", "", "required"))
	assert.Equal(t, []string{"title is required"}, e.Details)
}
