package cache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value      V
	expiration time.Time
}

// Cache 带过期时间的内存缓存，过期项在读写时惰性清理
type Cache[V any] struct {
	mu    sync.RWMutex
	items map[string]item[V]
	ttl   time.Duration
	now   func() time.Time
}

// New 创建缓存，ttl<=0 时不缓存任何值
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		items: make(map[string]item[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// WithClock 替换时钟
func (c *Cache[V]) WithClock(now func() time.Time) *Cache[V] {
	c.now = now
	return c
}

// Get 获取未过期的值
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(it.expiration) {
		var zero V
		return zero, false
	}
	return it.value, true
}

// Set 写入值并清理已过期的项
func (c *Cache[V]) Set(key string, value V) {
	if c.ttl <= 0 {
		return
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, it := range c.items {
		if !now.Before(it.expiration) {
			delete(c.items, k)
		}
	}
	c.items[key] = item[V]{value: value, expiration: now.Add(c.ttl)}
}

// GetOrLoad 命中则直接返回，否则调用 load 并缓存结果，load 出错时不缓存
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}

// Delete 删除缓存
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len 当前缓存项数量（含未清理的过期项）
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
