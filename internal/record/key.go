package record

import (
	"fmt"
	"strings"
)

// Key grammar, as the host store expects it:
//
//	!<collection>!<id>
//	!<collection>.<childField>!<parentId>.<childId>

// Key returns the storage key for a top-level document.
func (k Kind) Key(id string) string {
	return "!" + k.Collection() + "!" + id
}

// ChildKey returns the storage key for an embedded child split out of its
// parent during normalization.
func (k Kind) ChildKey(parentID, childID string) string {
	return "!" + k.Collection() + "." + k.ChildField() + "!" + parentID + "." + childID
}

// ParsedKey is the decoded form of a storage key.
type ParsedKey struct {
	Collection string
	ChildField string // "" for top-level keys
	ID         string // top-level id, or parent id for child keys
	ChildID    string // "" for top-level keys
}

// IsChild reports whether the key addresses an embedded child entry.
func (p ParsedKey) IsChild() bool { return p.ChildField != "" }

// ParseKey decodes a storage key written by the compiler.
func ParseKey(key string) (ParsedKey, error) {
	if !strings.HasPrefix(key, "!") {
		return ParsedKey{}, fmt.Errorf("malformed key %q", key)
	}
	scope, ids, ok := strings.Cut(key[1:], "!")
	if !ok || scope == "" || ids == "" {
		return ParsedKey{}, fmt.Errorf("malformed key %q", key)
	}

	collection, field, nested := strings.Cut(scope, ".")
	if !nested {
		if strings.Contains(ids, ".") {
			return ParsedKey{}, fmt.Errorf("malformed key %q: compound id on top-level key", key)
		}
		return ParsedKey{Collection: collection, ID: ids}, nil
	}

	parentID, childID, ok := strings.Cut(ids, ".")
	if !ok || parentID == "" || childID == "" {
		return ParsedKey{}, fmt.Errorf("malformed key %q: child key needs parent and child ids", key)
	}
	return ParsedKey{Collection: collection, ChildField: field, ID: parentID, ChildID: childID}, nil
}
