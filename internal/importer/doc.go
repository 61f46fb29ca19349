// Package importer copies built compendium packs into a live game world
// through the host application's document API.
//
// The host surfaces are modeled as injected capability interfaces rather
// than ambient globals: document CRUD with preserve-supplied-id semantics,
// folder find-or-create, settings flags, and an operator confirmation hook.
// Import is delete-then-recreate, not a merge: a re-import first removes
// world documents whose ids match the pack's index and then creates fresh
// copies. Per-pack failures are tallied and reported in aggregate; one
// failing pack never stops the rest.
package importer
