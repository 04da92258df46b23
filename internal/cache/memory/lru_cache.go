package memory

import (
	"container/list"
	"sync"
	"time"
)

// Options — параметры LRUCacheTTL.
type Options[V any] struct {
	// Name — значение метки cache в метриках.
	Name     string
	Capacity int
	// TTL <= 0 — без истечения.
	TTL time.Duration
	// Sliding — продлевать срок жизни при чтении (иначе срок считается от последней записи).
	Sliding bool
	// Clone — копия значения на входе и выходе; nil — значения отдаются как есть.
	Clone func(V) V
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// LRUCacheTTL — потокобезопасный LRU с TTL.
type LRUCacheTTL[V any] struct {
	name     string
	capacity int
	ttl      time.Duration
	sliding  bool
	clone    func(V) V
	now      func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

func NewLRUCacheTTL[V any](opts Options[V]) *LRUCacheTTL[V] {
	if opts.Capacity <= 0 {
		opts.Capacity = 1
	}
	if opts.Name == "" {
		opts.Name = "default"
	}
	return &LRUCacheTTL[V]{
		name:     opts.Name,
		capacity: opts.Capacity,
		ttl:      opts.TTL,
		sliding:  opts.Sliding,
		clone:    opts.Clone,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

func (c *LRUCacheTTL[V]) Get(key string) (V, bool) {
	var zero V
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		c.countOp("miss")
		return zero, false
	}
	ent := elem.Value.(*entry[V])
	if c.isExpired(ent, now) {
		c.countOp("expired")
		c.removeElement(elem)
		c.reportSize()
		return zero, false
	}
	c.ll.MoveToFront(elem)

	if c.sliding {
		ent.expiresAt = c.expiryFrom(now)
	}

	c.countOp("hit")
	return c.copyOf(ent.value), true
}

func (c *LRUCacheTTL[V]) Set(key string, value V) {
	if key == "" {
		return
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		ent := elem.Value.(*entry[V])
		ent.value = c.copyOf(value)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry[V]{
		key:       key,
		value:     c.copyOf(value),
		expiresAt: c.expiryFrom(now),
	})
	c.index[key] = elem
	c.reportSize()

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
}

// Delete — удаляет ключ; отсутствие ключа не ошибка.
func (c *LRUCacheTTL[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		c.removeElement(elem)
		c.reportSize()
	}
}

// Len — число элементов, включая ещё не вычищенные истёкшие.
func (c *LRUCacheTTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// PurgeExpired — полный проход с удалением истёкших; возвращает число удалённых.
func (c *LRUCacheTTL[V]) PurgeExpired() int {
	if c.ttl <= 0 {
		return 0
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for elem := c.ll.Back(); elem != nil; {
		prev := elem.Prev()
		if c.isExpired(elem.Value.(*entry[V]), now) {
			c.removeElement(elem)
			c.countOp("expired")
			removed++
		}
		elem = prev
	}
	if removed > 0 {
		c.reportSize()
	}
	return removed
}
