// Package cli provides the interactive faktura command-line client.
//
// It wires configuration, client storage, the API gateway, the session and
// localization managers and the product catalog, and serves a REPL on top of
// them. Typical flow: print the banner, restore the preferred language,
// restore the session from stored tokens, then execute user commands.
//
// Key features:
//   - Register / Verify / Login / Logout, password reset and change
//   - Product list with paging and debounced search
//   - Show / Add / Edit / Delete products
//   - Language switching at runtime
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
