package network

import (
	"sync"

	"runefall-server/pkg/api"
)

// Broadcaster занимается только рассылкой снапшотов подписчикам.
// Наблюдатели анонимны, поэтому ключом служит сам канал.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan api.Snapshot]bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[chan api.Snapshot]bool),
	}
}

// Subscribe создает канал для нового наблюдателя
func (b *Broadcaster) Subscribe() chan api.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan api.Snapshot, 100)
	b.subscribers[ch] = true
	return ch
}

// Unsubscribe удаляет наблюдателя
func (b *Broadcaster) Unsubscribe(ch chan api.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
}

// Broadcast отправляет снапшот всем
func (b *Broadcaster) Broadcast(snap api.Snapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- snap:
		default:
			// Пропускаем медленных клиентов
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
