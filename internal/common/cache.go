package common

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Cache is the non-expiring key/value space behind the in-memory stores.
type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

// NewMemoryStore returns a Cache whose entries never expire.
func NewMemoryStore() *Cache {
	return NewCache(cache.NoExpiration, 0)
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// Add stores value only if key is absent. It reports false when the key already exists.
func (c *Cache) Add(key string, value interface{}) bool {
	return c.Cache.Add(key, value, cache.DefaultExpiration) == nil
}

// Values returns every live value whose key starts with prefix.
func (c *Cache) Values(prefix string) []interface{} {
	var values []interface{}
	for k, item := range c.Cache.Items() {
		if strings.HasPrefix(k, prefix) {
			values = append(values, item.Object)
		}
	}
	return values
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

const (
	KeyPrefixUser = "user:"
	KeyPrefixBlog = "blog:"
)

func CacheKeyUser(id uuid.UUID) string {
	return KeyPrefixUser + id.String()
}

func CacheKeyUserByEmail(email string) string {
	return "user_by_email:" + email
}

func CacheKeyBlog(id uuid.UUID) string {
	return KeyPrefixBlog + id.String()
}
