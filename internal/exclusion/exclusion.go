// Package exclusion holds the test-order exclusion set: storefront order
// numbers whose webhooks must never produce records. The set is loaded once
// at startup from static configuration, a local file or S3.
package exclusion

import "context"

// Set answers membership queries for excluded order numbers.
type Set interface {
	// Contains checks if an order number is excluded.
	Contains(orderNumber int64) bool

	// Size returns the number of excluded order numbers.
	Size() int
}

// Loader defines the interface for loading exclusion lists.
type Loader interface {
	// Load reads an exclusion list (one order number per line) and returns a Set.
	Load(ctx context.Context, location string) (Set, error)
}
