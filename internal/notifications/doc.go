// Package notifications publishes optional ntfy push notifications for build
// and import outcomes. When no topic is configured a noop service is
// returned, so callers never need to branch on whether notifications are
// enabled.
package notifications
