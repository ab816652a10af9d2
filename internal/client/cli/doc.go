// Package cli provides the interactive giftshop command-line client.
//
// It wires configuration, local storage, the session, the API client and the
// page state (ranking, themes, theme products, order form) behind a REPL.
// Paths are resolved by the router exactly as the web client would, so
// "go /my" without a session lands on the login page and returns to /my
// after signing in.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
