// Package cli provides the interactive hwidgate command-line client.
//
// The REPL follows the gate: the prompt shows the current view and only the
// commands that view allows are dispatched. A successful login or
// registration immediately runs device verification and renders the result.
//
// Views and commands:
//   - auth:       register, login
//   - verifying:  status, logout
//   - authorized: status, profile, subscription, banned, checkout [months],
//     payment-success <session-id>, payment-cancel, ban, logout
//
// help and exit are available everywhere. The REPL is started via
// App.Run(ctx), which blocks until the user exits or input ends.
package cli
