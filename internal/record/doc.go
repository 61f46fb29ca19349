// Package record implements the document model shared by the compiler and
// importer: record kinds, the pack key grammar, metadata stamps, and the
// normalization pass that prepares raw campaign JSON for storage.
//
// Normalization is the one contract in this repository with teeth. Every
// document gets a stable id and a metadata stamp, and embedded children
// (an actor's carried items, a journal's pages, a table's results) are split
// into their own keyed entries while the parent keeps only an array of id
// strings. Leaving full objects embedded would silently produce packs the
// host cannot read, so the split is enforced here and nowhere else.
package record
