package firebase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "rentio/pkg/errors"
)

func TestMapSignInError(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"EMAIL_NOT_FOUND", "NOT_FOUND"},
		{"INVALID_PASSWORD", "UNAUTHORIZED"},
		{"INVALID_LOGIN_CREDENTIALS", "UNAUTHORIZED"},
		{"INVALID_EMAIL", "BAD_REQUEST"},
		{"USER_DISABLED", "FORBIDDEN"},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", "TOO_MANY_REQUESTS"},
		{"TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been temporarily disabled.", "TOO_MANY_REQUESTS"},
		{"SOMETHING_ELSE", "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			err := mapSignInError(tc.code)
			assert.True(t, apperrors.Is(err, tc.want), "code %q mapped to %v", tc.code, err)
		})
	}
}
