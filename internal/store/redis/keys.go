package redis

import (
	"fmt"
	"strings"
)

const (
	// KeyPrefix namespaces every key written by agenda
	KeyPrefix = "agenda:"
)

// Key returns the Redis key for an application key.
// Example: "favorites:4b1c..." -> "agenda:favorites:4b1c..."
func Key(key string) string {
	return KeyPrefix + key
}

// ExtractKey strips the namespace from a Redis key
func ExtractKey(redisKey string) (string, error) {
	if !strings.HasPrefix(redisKey, KeyPrefix) || len(redisKey) == len(KeyPrefix) {
		return "", fmt.Errorf("invalid key: %s", redisKey)
	}
	return redisKey[len(KeyPrefix):], nil
}
