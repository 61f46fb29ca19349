package record

import "fmt"

// Kind enumerates the document kinds bindery compiles. The mapping from a
// kind to its collection name and embedded child field is fixed: no kind has
// more than one embedded collection.
type Kind int

const (
	KindActor Kind = iota
	KindItem
	KindJournal
	KindScene
	KindTable
)

// ParseKind maps a configuration string to a Kind.
func ParseKind(value string) (Kind, error) {
	switch value {
	case "actor":
		return KindActor, nil
	case "item":
		return KindItem, nil
	case "journal":
		return KindJournal, nil
	case "scene":
		return KindScene, nil
	case "table":
		return KindTable, nil
	default:
		return 0, fmt.Errorf("unknown record kind %q", value)
	}
}

func (k Kind) String() string {
	switch k {
	case KindActor:
		return "actor"
	case KindItem:
		return "item"
	case KindJournal:
		return "journal"
	case KindScene:
		return "scene"
	case KindTable:
		return "table"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Collection returns the key-prefix segment for top-level documents of this
// kind, matching the host's compendium collection names.
func (k Kind) Collection() string {
	switch k {
	case KindActor:
		return "actors"
	case KindItem:
		return "items"
	case KindJournal:
		return "journal"
	case KindScene:
		return "scenes"
	case KindTable:
		return "tables"
	default:
		return ""
	}
}

// ChildField returns the name of the embedded collection split out during
// normalization, or "" for kinds that embed nothing.
func (k Kind) ChildField() string {
	switch k {
	case KindActor:
		return "items"
	case KindJournal:
		return "pages"
	case KindTable:
		return "results"
	default:
		return ""
	}
}
