// Package packstore persists compiled compendium packs as ordered key-value
// stores on disk, one bbolt database file per pack.
//
// A build always starts from an empty store: Create deletes any prior file
// before opening, so stale entries from an earlier build cannot leak into
// the new one. All entries of one pack are committed in a single batch
// transaction and the handle is released deterministically afterwards.
package packstore
