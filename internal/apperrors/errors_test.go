package apperrors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Validation("bad", nil), http.StatusBadRequest},
		{Auth("Invalid credentials"), http.StatusBadRequest},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{Conflict("dup", nil), http.StatusBadRequest},
		{NotFound("gone"), http.StatusNotFound},
		{Persistence("Failed to create score", http.StatusBadRequest, errors.New("x")), http.StatusBadRequest},
		{Persistence("Failed to fetch scores", http.StatusInternalServerError, errors.New("x")), http.StatusInternalServerError},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.err.HTTPStatus(), c.err.Message)
	}
}

func TestAs_WrappedError(t *testing.T) {
	err := errors.Wrap(NotFound("Subject not found"), "delete subject")

	appErr := As(err)
	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(err, KindValidation))
}

func TestAs_UnknownError(t *testing.T) {
	appErr := As(errors.New("boom"))
	assert.Equal(t, KindInternal, appErr.Kind)
	assert.Equal(t, "boom", appErr.Details())
}
