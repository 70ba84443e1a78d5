// Package dedup provides namespaced set-membership tracking so discovery
// surfaces each identifier at most once. Namespaces are independent: the
// same account can be tracked by internal id at the post-scan stage and by
// username at profile resolution without cross-contamination.
package dedup

import "context"

// Well-known namespaces.
const (
	NamespaceOwners          = "ig:owners"
	NamespaceUsernames       = "ig:usernames"
	NamespaceTikTokUsernames = "tiktok:usernames"
)

// Store tracks seen identifiers per namespace. Add must be atomic
// check-then-set: concurrent Adds of the same id report true exactly once.
type Store interface {
	// Seen reports whether the id is already present in the namespace.
	Seen(ctx context.Context, namespace, id string) (bool, error)
	// Add inserts the id and reports whether it was newly added.
	Add(ctx context.Context, namespace, id string) (bool, error)
	// Remove deletes the id, forcing re-discovery on the next encounter.
	Remove(ctx context.Context, namespace, id string) error
}
