package cache

import (
	"sync"
	"time"
)

// Cache 按键独立过期的TTL缓存。
// 命中且未过期时直接返回存量值，不调用producer；
// 未命中或已过期时调用producer，仅在producer成功时覆盖条目并更新fetchedAt。
// producer失败且存在旧条目时返回旧值（即使已过期），瞬时上游故障退化为"用最后一次成功的数据"。
// 不保证同键只有一个producer在途；并发写以最后完成者为准，不会破坏存量值。
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]
	now     func() time.Time
}

type entry[V any] struct {
	value     V
	fetchedAt time.Time
	ttl       time.Duration
}

// New 创建空缓存
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]entry[V]),
		now:     time.Now,
	}
}

// NewWithClock 创建使用指定时钟的缓存（测试用）
func NewWithClock[K comparable, V any](now func() time.Time) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]entry[V]),
		now:     now,
	}
}

// GetOrFetch 取值或刷新。producer在锁外执行，不会阻塞其他键的读取
func (c *Cache[K, V]) GetOrFetch(key K, ttl time.Duration, producer func() (V, error)) (V, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < e.ttl {
		v := e.value
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err := producer()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		// 刷新失败：有旧值则退回旧值，fetchedAt不更新
		if e, ok := c.entries[key]; ok {
			return e.value, nil
		}
		var zero V
		return zero, err
	}
	c.entries[key] = entry[V]{value: v, fetchedAt: c.now(), ttl: ttl}
	return v, nil
}

// Invalidate 删除指定键（如活动切换时丢弃旧RoomMap）
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
