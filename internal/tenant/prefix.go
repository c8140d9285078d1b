package tenant

import "context"

// From exposes the lab identifier retrieval helper.
func From(ctx context.Context) (string, bool) {
	return FromContext(ctx)
}

// PrefixKey namespaces a cache key with the lab identifier.
func PrefixKey(labID, key string) string {
	if labID == "" {
		return key
	}
	return "lab:" + labID + ":" + key
}
