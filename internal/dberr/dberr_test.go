package dberr

import (
	"fmt"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{name: "not found", err: NotFound("Exercise with id 7"), want: "Exercise with id 7 not found"},
		{name: "validation", err: Validation("name is required"), want: "validation error: name is required"},
		{name: "duplicate", err: Duplicate("email"), want: "duplicate entry for email"},
		{name: "unauthorized", err: Unauthorized(""), want: "unauthorized access"},
		{name: "store with code", err: Store("23503", "violates foreign key", "", nil), want: "database error (23503): violates foreign key"},
		{name: "network", err: Network(io.ErrUnexpectedEOF), want: "network error: unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_IsMatchesKindSentinels(t *testing.T) {
	err := fmt.Errorf("loading block: %w", NotFound("Block with id 3"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrDuplicate)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	err := Network(io.ErrUnexpectedEOF)

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestKindOf_PlainErrorIsUnknown(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.False(t, IsNotFound(nil))
}
