// Package cli provides the interactive gophnotes terminal client.
//
// It wires configuration, the blob storage backend, the note services and a
// read-eval-print loop. Typical flow: open storage (asking for the
// passphrase when encryption is on), restore or create a session, load the
// notes, then execute user commands until "exit".
//
// Key features:
//   - Login / Logout / Whoami (local stub, session survives restarts)
//   - new / edit / show / delete / list notes
//   - search with an optional content-only or tags-only scope
//   - folders, tags and a dashboard summary
//   - markdown export and import
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
