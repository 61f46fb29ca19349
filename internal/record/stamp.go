package record

import "time"

// Field names reserved on every stored document.
const (
	FieldID    = "_id"
	FieldStats = "_stats"
)

// Provenance carries the literal values written into every new metadata
// stamp. Only the timestamps vary per record.
type Provenance struct {
	HostVersion   string
	SystemID      string
	SystemVersion string
	Author        string
}

// NewStamp builds a metadata stamp for a document first seen at now. Existing
// stamps are never rewritten; this is only attached where none is present.
func NewStamp(p Provenance, now time.Time) map[string]any {
	ms := now.UnixMilli()
	return map[string]any{
		"hostVersion":    p.HostVersion,
		"systemId":       p.SystemID,
		"systemVersion":  p.SystemVersion,
		"createdTime":    ms,
		"modifiedTime":   ms,
		"lastModifiedBy": p.Author,
	}
}

// CloneStamp deep-copies a stamp. Children inherit their parent's stamp by
// value, so later mutation of one never shows through the other.
func CloneStamp(stamp map[string]any) map[string]any {
	if stamp == nil {
		return nil
	}
	clone, _ := deepCopy(stamp).(map[string]any)
	return clone
}

func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			out[key] = deepCopy(elem)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = deepCopy(elem)
		}
		return out
	default:
		return v
	}
}
