package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerificationState_StringAndTerminal(t *testing.T) {
	tests := []struct {
		state    VerificationState
		name     string
		terminal bool
	}{
		{StateChecking, "checking", false},
		{StateVerified, "verified", true},
		{StateMismatched, "mismatched", true},
		{StateFailed, "failed", true},
		{VerificationState(42), "unknown", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.state.String())
		assert.Equal(t, tt.terminal, tt.state.Terminal())
	}
}

func TestFields_Accessors(t *testing.T) {
	f := Fields{
		"username":     "alice",
		"isSubscribed": true,
		"months":       float64(3),
		"nothing":      nil,
	}

	assert.Equal(t, "alice", f.String("username"))
	assert.Equal(t, "3", f.String("months"))
	assert.Equal(t, "", f.String("nothing"))
	assert.Equal(t, "", f.String("missing"))
	assert.True(t, f.Bool("isSubscribed"))
	assert.False(t, f.Bool("username"))
	assert.Equal(t, []string{"isSubscribed", "months", "nothing", "username"}, f.Keys())
}
