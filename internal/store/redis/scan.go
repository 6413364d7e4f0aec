package redis

import (
	"context"
	"fmt"
)

// Count returns how many application keys start with prefix.
// It walks the keyspace with SCAN, never KEYS.
func (s *Store) Count(ctx context.Context, prefix string) (int, error) {
	n := 0
	iter := s.client.Scan(ctx, 0, Key(prefix)+"*", 100).Iterator()
	for iter.Next(ctx) {
		if _, err := ExtractKey(iter.Val()); err != nil {
			continue
		}
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan %s*: %w", prefix, err)
	}
	return n, nil
}
