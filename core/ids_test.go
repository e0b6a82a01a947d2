package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	id := NewID("MSG")

	assert.True(t, strings.HasPrefix(id, "msg_"))
	assert.Len(t, id, len("msg_")+26)
	assert.True(t, isValidID(id))
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID("msg")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewID_EmptyPrefixPanics(t *testing.T) {
	assert.Panics(t, func() { NewID("") })
	assert.Panics(t, func() { NewID("   ") })
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected bool
	}{
		{name: "Valid", id: "msg_01G0EZ1XTM37C5X11SQTDNCTM1", expected: true},
		{name: "Empty", id: "", expected: false},
		{name: "Missing prefix", id: "_01G0EZ1XTM37C5X11SQTDNCTM1", expected: false},
		{name: "Upper case prefix", id: "MSG_01G0EZ1XTM37C5X11SQTDNCTM1", expected: false},
		{name: "Too short", id: "msg_01G0EZ1XTM", expected: false},
		{name: "Invalid character", id: "msg_01G0EZ1XTM37C5X11SQTDNCTMU", expected: false},
		{name: "Extra separator", id: "msg_01G0EZ1XTM37C5X1_SQTDNCTM1", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isValidID(tt.id))
		})
	}
}
