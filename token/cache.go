package token

import "time"

// Cache is the key-value capability the Manager stores tokens in. Hosts
// running multiple processes should back it with a shared store; the
// implementation must be safe for concurrent use.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string, ttl time.Duration)
	Delete(key string)
}
