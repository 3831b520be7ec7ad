// Package cli provides the interactive journal command-line client.
//
// It wires configuration, the local encrypted store, the sync session, and an
// interactive REPL. Typical flow: connect with username and passphrase, write
// and browse entries locally, and sync the encrypted collection on demand.
//
// Key features:
//   - Connect / Disconnect (deterministic pseudonymous identity, no account)
//   - Add / List / Show / Delete journal entries (soft delete)
//   - Sync with the zero-knowledge backend, with retry on transient failures
//   - Export / Import encrypted backup files
//   - One-off sharing of a single entry via an expiring link
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
