package fetch

import (
	"os"
	"time"
)

// Clock abstracts time.Now so freshness checks are testable.
type Clock func() time.Time

// CachePolicy decides whether an on-disk raw file is recent enough to reuse
// instead of re-fetching.
type CachePolicy struct {
	Freshness time.Duration
	Now       Clock
}

// NewCachePolicy creates a policy with the given freshness window and the
// real clock.
func NewCachePolicy(freshness time.Duration) CachePolicy {
	return CachePolicy{Freshness: freshness, Now: time.Now}
}

// IsFresh reports whether the file at path exists and was modified within the
// freshness window. A zero or negative window disables caching.
func (p CachePolicy) IsFresh(path string) bool {
	if p.Freshness <= 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return now().Sub(info.ModTime()) < p.Freshness
}
