package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name            string `json:"name" validate:"required,min=3,max=20"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=5"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            string `json:"user_type" validate:"required,oneof=aspirant employer"`
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct("Test", signup{
		Name:            "Al",
		Email:           "not-an-email",
		Password:        "abc",
		ConfirmPassword: "abcd",
		Role:            "admin",
	})
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeInvalidArgument))

	fields := FieldsOf(err)
	assert.Equal(t, []string{"The name must be at least 3 characters."}, fields["name"])
	assert.Equal(t, []string{"The email must be a valid email address."}, fields["email"])
	assert.Equal(t, []string{"The password must be at least 5 characters."}, fields["password"])
	assert.Equal(t, []string{"The confirm password confirmation does not match."}, fields["confirm_password"])
	assert.Equal(t, []string{"The selected user type is invalid."}, fields["user_type"])
}

func TestValidateStructRequired(t *testing.T) {
	fields := FieldsOf(ValidateStruct("Test", signup{}))
	assert.Equal(t, []string{"The name field is required."}, fields["name"])
	assert.Len(t, fields, 5)
}

func TestValidateStructOK(t *testing.T) {
	assert.NoError(t, ValidateStruct("Test", signup{
		Name:            "Alice",
		Email:           "alice@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		Role:            "aspirant",
	}))
}

func TestPasswordHashing(t *testing.T) {
	SetBcryptCost(4)
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.NoError(t, CheckPassword(hash, "secret"))
	assert.Error(t, CheckPassword(hash, "wrong"))
}
