package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusUnprocessableEntity},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeSessionExpired, http.StatusGone},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", E(tc.code, "Op", "msg", nil))
			assert.Equal(t, tc.want, HTTPStatus(err))
		})
	}

	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestAppErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("db down")
	err := E(CodeInternal, "UserRepo.Get", "failed to load user", cause)

	assert.Equal(t, "UserRepo.Get: failed to load user: db down", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsCode(err, CodeInternal))
	assert.False(t, IsCode(cause, CodeInternal))
}

func TestInvalidCarriesFields(t *testing.T) {
	err := InvalidField("AccountService.Register", "email", "The email has already been taken.")

	assert.True(t, IsCode(err, CodeInvalidArgument))
	assert.Equal(t, FieldErrors{"email": {"The email has already been taken."}}, FieldsOf(err))
	assert.Nil(t, FieldsOf(errors.New("plain")))
}
