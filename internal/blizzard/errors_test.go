package blizzard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeNetError struct {
	timeout bool
}

func (e *fakeNetError) Error() string   { return "fake net error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "deadline exceeded",
			err:     fmt.Errorf("request: %w", context.DeadlineExceeded),
			wantErr: ErrRequestTimeout,
		},
		{
			name:    "net timeout",
			err:     &fakeNetError{timeout: true},
			wantErr: ErrRequestTimeout,
		},
		{
			name:    "net error without timeout",
			err:     &fakeNetError{},
			wantErr: ErrConnectionFailed,
		},
		{
			name:    "cancellation passes through",
			err:     fmt.Errorf("request: %w", context.Canceled),
			wantErr: context.Canceled,
		},
		{
			name:    "plain error",
			err:     errors.New("connection refused"),
			wantErr: ErrConnectionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTransport(tt.err)
			assert.ErrorIs(t, got, tt.wantErr)
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	withBody := NewAPIError(500, "internal error")
	assert.Equal(t, "API error (status 500): internal error", withBody.Error())

	withoutBody := NewAPIError(404, "")
	assert.Equal(t, "API error (status 404)", withoutBody.Error())
}

func TestVendorError_Error(t *testing.T) {
	err := &VendorError{Message: "season not active"}
	assert.Equal(t, "vendor error: season not active", err.Error())
}
