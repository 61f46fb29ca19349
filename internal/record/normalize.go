package record

import (
	"fmt"
	"time"

	"bindery/internal/ident"
)

// Entry is one key/value pair destined for a pack store.
type Entry struct {
	Key   string
	Value map[string]any
}

// Normalizer assigns identifiers and metadata stamps and splits embedded
// children into independent entries. The zero value is not usable; set Kind
// and Provenance. NewID and Now exist for deterministic tests and default to
// ident.New and time.Now.
type Normalizer struct {
	Kind       Kind
	Provenance Provenance
	NewID      func() string
	Now        func() time.Time
}

// Normalize prepares one source document for storage and returns its entries:
// the parent first, then one entry per embedded child in source order. The
// document is modified in place; after the call its embedded collection, if
// any, holds only child id strings.
//
// Pre-set _id and _stats values pass through untouched. A child lacking its
// own stamp inherits a copy of the parent's.
func (n Normalizer) Normalize(doc map[string]any) ([]Entry, error) {
	newID := n.NewID
	if newID == nil {
		newID = ident.New
	}
	now := n.Now
	if now == nil {
		now = time.Now
	}

	id, _ := doc[FieldID].(string)
	if id == "" {
		id = newID()
		doc[FieldID] = id
	}
	stamp, _ := doc[FieldStats].(map[string]any)
	if stamp == nil {
		stamp = NewStamp(n.Provenance, now())
		doc[FieldStats] = stamp
	}

	entries := []Entry{{Key: n.Kind.Key(id), Value: doc}}

	field := n.Kind.ChildField()
	if field == "" {
		return entries, nil
	}
	raw, present := doc[field]
	if !present || raw == nil {
		return entries, nil
	}
	children, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q: expected array, got %T", field, raw)
	}

	ids := make([]any, 0, len(children))
	for i, elem := range children {
		// A bare string is an already-split child reference; keep it.
		if ref, ok := elem.(string); ok {
			ids = append(ids, ref)
			continue
		}
		child, ok := elem.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q[%d]: expected object, got %T", field, i, elem)
		}
		childID, _ := child[FieldID].(string)
		if childID == "" {
			childID = newID()
			child[FieldID] = childID
		}
		if _, stamped := child[FieldStats].(map[string]any); !stamped {
			child[FieldStats] = CloneStamp(stamp)
		}
		entries = append(entries, Entry{Key: n.Kind.ChildKey(id, childID), Value: child})
		ids = append(ids, childID)
	}
	doc[field] = ids

	return entries, nil
}
