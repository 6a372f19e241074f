// Package models defines client-side data models shared by the services,
// the gate and the CLI.
package models

// VerificationState is the hardware verification status of one session.
// A fresh session starts in StateChecking; the other states are terminal.
type VerificationState int

const (
	StateChecking VerificationState = iota
	StateVerified
	StateMismatched
	StateFailed
)

func (s VerificationState) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateVerified:
		return "verified"
	case StateMismatched:
		return "mismatched"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is allowed from s.
func (s VerificationState) Terminal() bool {
	return s == StateVerified || s == StateMismatched || s == StateFailed
}
