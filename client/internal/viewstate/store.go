package viewstate

import "sync"

// Store хранит текущий снимок состояния S и рассылает новые снимки подписчикам.
// Каждый подписчик получает последний снимок: промежуточные могут быть пропущены.
type Store[S any] struct {
	mu     sync.Mutex
	state  S
	subs   map[int]chan S
	nextID int
	closed bool
}

// NewStore создает хранилище с начальным снимком.
func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{state: initial, subs: make(map[int]chan S)}
}

// Get возвращает текущий снимок.
func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update применяет fn к текущему снимку и рассылает результат.
// После Close обновления игнорируются и возвращается последний снимок.
func (s *Store[S]) Update(fn func(S) S) S {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.state
	}
	s.state = fn(s.state)
	for _, ch := range s.subs {
		publish(ch, s.state)
	}
	return s.state
}

// Subscribe возвращает канал снимков и функцию отписки.
// Текущий снимок сразу доступен в канале.
func (s *Store[S]) Subscribe() (<-chan S, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan S, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.state

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close закрывает все подписки. Повторный вызов безопасен.
func (s *Store[S]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// publish кладет снимок в канал, вытесняя непрочитанный.
func publish[S any](ch chan S, v S) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
