// Package compiler builds compendium packs from campaign JSON sources.
//
// Each configured pack maps one JSON array of source records to one on-disk
// key-value store. Records are normalized (ids, metadata stamps, embedded
// children split into their own entries) and committed as a single batch into
// a freshly recreated store, so a build is idempotent and never inherits
// stale entries. Packs build independently: a missing source file is a soft
// skip and a malformed one fails only its own pack.
package compiler
