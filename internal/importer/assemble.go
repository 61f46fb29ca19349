package importer

import (
	"fmt"

	"bindery/internal/packstore"
	"bindery/internal/record"
)

// assemblePack reads a built pack and reassembles split children into their
// parents, producing full documents in the shape the host's world-creation
// API expects. The inverse of the compiler's embedded split.
func assemblePack(store *packstore.Store, kind record.Kind) ([]Document, error) {
	parents := make(map[string]Document)
	var order []string
	children := make(map[string]map[string]Document)

	err := store.ForEach(func(key string, doc map[string]any) error {
		parsed, err := record.ParseKey(key)
		if err != nil {
			return err
		}
		if parsed.Collection != kind.Collection() {
			return fmt.Errorf("entry %q does not belong to collection %q", key, kind.Collection())
		}
		if parsed.IsChild() {
			if children[parsed.ID] == nil {
				children[parsed.ID] = make(map[string]Document)
			}
			children[parsed.ID][parsed.ChildID] = doc
			return nil
		}
		parents[parsed.ID] = doc
		order = append(order, parsed.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	field := kind.ChildField()
	docs := make([]Document, 0, len(order))
	for _, parentID := range order {
		parent := parents[parentID]
		if field != "" {
			if err := reattachChildren(parent, field, parentID, children[parentID]); err != nil {
				return nil, err
			}
		}
		docs = append(docs, parent)
	}
	return docs, nil
}

func reattachChildren(parent Document, field, parentID string, split map[string]Document) error {
	refs, ok := parent[field].([]any)
	if !ok || len(refs) == 0 {
		return nil
	}
	full := make([]any, 0, len(refs))
	for _, ref := range refs {
		childID, ok := ref.(string)
		if !ok {
			return fmt.Errorf("parent %s: field %q holds %T, want id string", parentID, field, ref)
		}
		child, ok := split[childID]
		if !ok {
			return fmt.Errorf("parent %s: child entry %s missing from pack", parentID, childID)
		}
		full = append(full, child)
	}
	parent[field] = full
	return nil
}
