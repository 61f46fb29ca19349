// Package history records build runs in a small SQLite database so operators
// can inspect what the last builds produced without re-running them. One row
// per run, one row per pack outcome within a run.
package history
