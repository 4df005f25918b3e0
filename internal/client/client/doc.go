// Package client contains the transport layer of the flow client.
//
// # Overview
//
//  1. A transport contract (Client) used by the identity and storage
//     services: a generic Do plus the Version probe.
//  2. HTTPClient, the net/http implementation. It resolves request paths
//     against the backend base URL, JSON-encodes bodies and reads responses
//     fully so callers can inspect status and body independently.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are not errors
// at the Do level; (*Response).Err turns them into *StatusError, which
// matches ErrBadStatus and, for 404, ErrNotFound via errors.Is.
//
// # Timeouts
//
// HTTPClient imposes none. Callers bound each call through its context.
package client
