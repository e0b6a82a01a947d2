package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *LookupError
		expected string
	}{
		{
			name:     "Status error",
			err:      &LookupError{Kind: LookupErrorStatus, Endpoint: "dcim/devices", StatusCode: 403},
			expected: `netbox lookup "dcim/devices" failed (status): status 403`,
		},
		{
			name:     "Transport error with cause",
			err:      &LookupError{Kind: LookupErrorTransport, Endpoint: "status", Err: errors.New("connection refused")},
			expected: `netbox lookup "status" failed (transport): connection refused`,
		},
		{
			name:     "Shape error without cause",
			err:      &LookupError{Kind: LookupErrorShape, Endpoint: "dcim/racks"},
			expected: `netbox lookup "dcim/racks" failed (shape)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestIsLookupError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	wrapped := fmt.Errorf("search failed: %w", &LookupError{Kind: LookupErrorDecode, Endpoint: "ipam/ip-addresses", Err: cause})

	lookupErr, ok := IsLookupError(wrapped)
	require.True(t, ok)
	assert.Equal(t, LookupErrorDecode, lookupErr.Kind)
	assert.ErrorIs(t, wrapped, cause)

	_, ok = IsLookupError(errors.New("plain error"))
	assert.False(t, ok)

	_, ok = IsLookupError(nil)
	assert.False(t, ok)
}

func TestLookupError_IsMalformedResponse(t *testing.T) {
	tests := []struct {
		kind     LookupErrorKind
		expected bool
	}{
		{kind: LookupErrorTransport, expected: false},
		{kind: LookupErrorStatus, expected: false},
		{kind: LookupErrorEmptyBody, expected: true},
		{kind: LookupErrorDecode, expected: true},
		{kind: LookupErrorShape, expected: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := &LookupError{Kind: tt.kind, Endpoint: "dcim/racks"}
			assert.Equal(t, tt.expected, err.IsMalformedResponse())
		})
	}
}
