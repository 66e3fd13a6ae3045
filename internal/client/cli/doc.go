// Package cli provides the interactive gatekeeper terminal client.
//
// It wires configuration, the HTTP transport, the reply dispatcher and the
// health poller to a small REPL. The poller and the dispatcher run in the
// background; the REPL only issues requests and never waits for replies.
// Outcomes are printed by a Notifier as they arrive.
//
// Commands:
//   - help          list commands
//   - login         submit an identifier and secret
//   - status        show server health and in-flight requests
//   - exit | quit   leave the program
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
