package memory

import (
	"container/list"
	"time"
)

// lru — LRU с TTL на container/list. Не потокобезопасен: блокировка на стороне владельца.
type lru[K comparable, V any] struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	order *list.List // фронт — самый свежий
	index map[K]*list.Element
}

type lruItem[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time // нулевое значение — без истечения
}

// evictReason — почему запись покинула кэш (метка метрики).
type evictReason string

const (
	reasonEvicted evictReason = "evicted"
	reasonExpired evictReason = "expired"
)

func newLRU[K comparable, V any](capacity int, ttl time.Duration) *lru[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &lru[K, V]{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		order:    list.New(),
		index:    make(map[K]*list.Element, capacity),
	}
}

// get — значение и признак попадания; просроченная запись удаляется и отдаётся как expired.
func (l *lru[K, V]) get(key K) (v V, hit bool, expired bool) {
	el, ok := l.index[key]
	if !ok {
		return v, false, false
	}
	it := el.Value.(*lruItem[K, V])
	if l.stale(it) {
		l.drop(el)
		return v, false, true
	}
	l.order.MoveToFront(el)
	return it.value, true, false
}

// put — вставка или обновление; возвращает причины вытеснений, случившихся по ходу.
func (l *lru[K, V]) put(key K, v V) []evictReason {
	if el, ok := l.index[key]; ok {
		it := el.Value.(*lruItem[K, V])
		it.value, it.expiresAt = v, l.expiry()
		l.order.MoveToFront(el)
		return nil
	}

	var out []evictReason
	for back := l.order.Back(); back != nil && l.stale(back.Value.(*lruItem[K, V])); back = l.order.Back() {
		l.drop(back)
		out = append(out, reasonExpired)
	}

	l.index[key] = l.order.PushFront(&lruItem[K, V]{key: key, value: v, expiresAt: l.expiry()})
	for l.order.Len() > l.capacity {
		l.drop(l.order.Back())
		out = append(out, reasonEvicted)
	}
	return out
}

func (l *lru[K, V]) len() int { return l.order.Len() }

func (l *lru[K, V]) drop(el *list.Element) {
	delete(l.index, el.Value.(*lruItem[K, V]).key)
	l.order.Remove(el)
}

func (l *lru[K, V]) stale(it *lruItem[K, V]) bool {
	return !it.expiresAt.IsZero() && l.now().After(it.expiresAt)
}

func (l *lru[K, V]) expiry() time.Time {
	if l.ttl <= 0 {
		return time.Time{}
	}
	return l.now().Add(l.ttl)
}
