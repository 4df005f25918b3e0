// Package localstore is the client's equivalent of browser local storage:
// a flat key → bytes table in the local SQLite database.
//
// Get returns (nil, nil) for absent keys. GetOrInit is the only compound
// operation and runs in a single transaction, so concurrent first reads of
// a key agree on one value.
package localstore
