package importer

import (
	"context"

	"bindery/internal/record"
)

// Document is one host document payload.
type Document = map[string]any

// DocumentService is the host's document-collection CRUD surface. Creation
// must preserve supplied _id values.
type DocumentService interface {
	CreateDocuments(ctx context.Context, kind record.Kind, docs []Document) error
	DeleteDocuments(ctx context.Context, kind record.Kind, ids []string) error
	ListDocumentIDs(ctx context.Context, kind record.Kind) ([]string, error)
}

// FolderService manages the host's folder tree. Folders are addressed by
// (kind, name, parent); parentID is "" for root-level folders. Matching is
// by current name, so a folder renamed by an operator will not be found and
// a fresh one is created on the next import.
type FolderService interface {
	FindFolder(ctx context.Context, kind record.Kind, name, parentID string) (id string, found bool, err error)
	CreateFolder(ctx context.Context, kind record.Kind, name, parentID string) (id string, err error)
}

// Settings stores the flags that make repeated imports idempotent.
type Settings interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Host bundles the capabilities the orchestrator needs from the running
// application. Confirm may be nil, in which case already-imported packs are
// skipped without prompting.
type Host struct {
	Documents DocumentService
	Folders   FolderService
	Settings  Settings
	Confirm   func(prompt string) bool
}
