package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		raw  string
		want State
		ok   bool
	}{
		{"", StateAll, true},
		{"   ", StateAll, true},
		{"ALL", StateAll, true},
		{"current", StateCurrent, true},
		{"Past", StatePast, true},
		{"FUTURE", StateFuture, true},
		{" waiting ", StateWaiting, true},
		{"rejected", StateRejected, true},
		{"SOMETIMES", "", false},
		{"APPROVED", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseState(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw %q", tt.raw)
		assert.Equal(t, tt.want, got, "raw %q", tt.raw)
	}
}
