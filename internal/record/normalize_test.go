package record_test

import (
	"testing"
	"time"

	"bindery/internal/record"
)

func sequentialIDs(ids ...string) func() string {
	i := 0
	return func() string {
		if i >= len(ids) {
			panic("ran out of test ids")
		}
		id := ids[i]
		i++
		return id
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
}

func testProvenance() record.Provenance {
	return record.Provenance{
		HostVersion:   "12.331",
		SystemID:      "dh2e",
		SystemVersion: "1.0.0",
		Author:        "bindery",
	}
}

func TestNormalizeActorWithEmbeddedItems(t *testing.T) {
	n := record.Normalizer{
		Kind:       record.KindActor,
		Provenance: testProvenance(),
		NewID:      sequentialIDs("parentIDaaaaaaaa", "childIDbbbbbbbbb"),
		Now:        fixedNow,
	}
	doc := map[string]any{
		"name":  "Grendel",
		"items": []any{map[string]any{"name": "Shiv"}},
	}

	entries, err := n.Normalize(doc)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	parent := entries[0]
	if parent.Key != "!actors!parentIDaaaaaaaa" {
		t.Errorf("parent key = %q", parent.Key)
	}
	items, ok := parent.Value["items"].([]any)
	if !ok {
		t.Fatalf("parent items field is %T, want []any", parent.Value["items"])
	}
	if len(items) != 1 || items[0] != "childIDbbbbbbbbb" {
		t.Fatalf("parent items = %#v, want bare child id", items)
	}

	child := entries[1]
	if child.Key != "!actors.items!parentIDaaaaaaaa.childIDbbbbbbbbb" {
		t.Errorf("child key = %q", child.Key)
	}
	if child.Value["name"] != "Shiv" {
		t.Errorf("child name = %v", child.Value["name"])
	}
	if child.Value[record.FieldID] != "childIDbbbbbbbbb" {
		t.Errorf("child _id = %v", child.Value[record.FieldID])
	}

	parentStamp := parent.Value[record.FieldStats].(map[string]any)
	childStamp, ok := child.Value[record.FieldStats].(map[string]any)
	if !ok {
		t.Fatal("child has no stamp")
	}
	for _, field := range []string{"hostVersion", "systemId", "systemVersion", "createdTime", "modifiedTime", "lastModifiedBy"} {
		if childStamp[field] != parentStamp[field] {
			t.Errorf("stamp field %s: child %v != parent %v", field, childStamp[field], parentStamp[field])
		}
	}
	if wantMS := fixedNow().UnixMilli(); parentStamp["createdTime"] != wantMS {
		t.Errorf("createdTime = %v, want %v", parentStamp["createdTime"], wantMS)
	}
}

func TestNormalizePreservesExistingIDAndStamp(t *testing.T) {
	existingStamp := map[string]any{
		"hostVersion":    "11.315",
		"systemId":       "older",
		"systemVersion":  "0.9.0",
		"createdTime":    int64(1700000000000),
		"modifiedTime":   int64(1700000000001),
		"lastModifiedBy": "someone",
	}
	doc := map[string]any{
		record.FieldID:    "handAuthoredID00",
		record.FieldStats: existingStamp,
		"name":            "Inquisitor Vex",
	}
	n := record.Normalizer{
		Kind:       record.KindActor,
		Provenance: testProvenance(),
		NewID: func() string {
			t.Fatal("id generator must not run for a pre-set id")
			return ""
		},
		Now: fixedNow,
	}

	entries, err := n.Normalize(doc)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if entries[0].Key != "!actors!handAuthoredID00" {
		t.Errorf("key = %q", entries[0].Key)
	}
	got := entries[0].Value[record.FieldStats].(map[string]any)
	if got["systemId"] != "older" || got["modifiedTime"] != int64(1700000000001) {
		t.Errorf("stamp was rewritten: %#v", got)
	}
}

func TestNormalizeChildStampIsDetachedCopy(t *testing.T) {
	n := record.Normalizer{
		Kind:       record.KindTable,
		Provenance: testProvenance(),
		NewID:      sequentialIDs("tableIDcccccccc1", "resultIDdddddddd"),
		Now:        fixedNow,
	}
	doc := map[string]any{
		"name":    "Perils of the Warp",
		"results": []any{map[string]any{"text": "Nothing happens"}},
	}
	entries, err := n.Normalize(doc)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	childStamp := entries[1].Value[record.FieldStats].(map[string]any)
	childStamp["modifiedTime"] = int64(9999999999999)

	parentStamp := entries[0].Value[record.FieldStats].(map[string]any)
	if parentStamp["modifiedTime"] == int64(9999999999999) {
		t.Fatal("mutating the child stamp leaked into the parent")
	}
}

func TestNormalizeKindsWithoutEmbeddedCollections(t *testing.T) {
	for _, kind := range []record.Kind{record.KindItem, record.KindScene} {
		n := record.Normalizer{
			Kind:       kind,
			Provenance: testProvenance(),
			NewID:      sequentialIDs("soloSceneID00001"),
			Now:        fixedNow,
		}
		entries, err := n.Normalize(map[string]any{"name": "Burg Square"})
		if err != nil {
			t.Fatalf("%s: Normalize failed: %v", kind, err)
		}
		if len(entries) != 1 {
			t.Fatalf("%s: expected 1 entry, got %d", kind, len(entries))
		}
	}
}

func TestNormalizeKeepsBareChildReferences(t *testing.T) {
	n := record.Normalizer{
		Kind:       record.KindJournal,
		Provenance: testProvenance(),
		NewID:      sequentialIDs("journalIDeeeeee1"),
		Now:        fixedNow,
	}
	doc := map[string]any{
		"name":  "Session Notes",
		"pages": []any{"alreadySplitID01"},
	}
	entries, err := n.Normalize(doc)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the parent entry, got %d", len(entries))
	}
	pages := entries[0].Value["pages"].([]any)
	if len(pages) != 1 || pages[0] != "alreadySplitID01" {
		t.Fatalf("pages = %#v", pages)
	}
}

func TestNormalizeRejectsMalformedChildCollection(t *testing.T) {
	n := record.Normalizer{
		Kind:       record.KindActor,
		Provenance: testProvenance(),
		NewID:      sequentialIDs("actorIDffffffff1", "unusedIDgggggggg"),
		Now:        fixedNow,
	}
	cases := []struct {
		name string
		doc  map[string]any
	}{
		{"non-array field", map[string]any{"items": "not an array"}},
		{"non-object element", map[string]any{"items": []any{42}}},
	}
	for _, tc := range cases {
		if _, err := n.Normalize(tc.doc); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
