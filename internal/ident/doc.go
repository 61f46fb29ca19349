// Package ident generates the fixed-length identifiers stamped onto
// compendium documents and their embedded children.
//
// Identifiers are sixteen alphanumeric characters drawn from a cryptographic
// random source, matching the shape of hand-authored ids in the campaign
// sources so generated and authored ids live in the same keyspace without
// collisions across rebuilds.
package ident
