package events

import (
	"sync"

	"todo-notes/internal/model"
)

// subscriberBuffer размер буфера канала подписчика
const subscriberBuffer = 16

// Publisher получает события изменений от сервисов
type Publisher interface {
	Publish(change model.Change)
}

// Broker управляет подписчиками на события изменений задач и заметок
type Broker struct {
	subscribers map[chan model.Change]struct{}
	mu          sync.RWMutex
}

// NewBroker создает новый экземпляр Broker
func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[chan model.Change]struct{}),
	}
}

// Subscribe добавляет нового подписчика и возвращает канал для получения событий
func (b *Broker) Subscribe() chan model.Change {
	ch := make(chan model.Change, subscriberBuffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe удаляет подписчика и закрывает его канал
func (b *Broker) Unsubscribe(ch chan model.Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[ch]; ok {
		close(ch)
		delete(b.subscribers, ch)
	}
}

// Publish отправляет событие всем подписчикам.
// Если канал подписчика переполнен, событие пропускается (защита от backpressure).
func (b *Broker) Publish(change model.Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- change:
		default:
		}
	}
}

// Subscribers возвращает текущее число подписчиков
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Multi рассылает событие нескольким получателям по порядку
type Multi []Publisher

// Publish реализует Publisher
func (m Multi) Publish(change model.Change) {
	for _, p := range m {
		if p != nil {
			p.Publish(change)
		}
	}
}

// Discard игнорирует все события
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(model.Change) {}
