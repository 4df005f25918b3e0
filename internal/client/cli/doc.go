// Package cli provides the interactive Flow command-line client.
//
// It wires configuration, client-local storage, the backend API, the user
// preferences store and the theme presenter into a REPL. A background
// watcher probes the backend and switches the prompt between online and
// offline mode; a color-scheme source keeps the theme in step with the
// terminal (or a watched file).
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher and runREPL for details.
package cli
