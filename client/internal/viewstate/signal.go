package viewstate

import "sync"

// Signal - одноразовое событие завершения операции.
// Fire можно вызывать сколько угодно раз: в канал попадет не более одного непрочитанного события.
type Signal struct {
	once sync.Once
	ch   chan struct{}
}

func (s *Signal) init() {
	s.once.Do(func() { s.ch = make(chan struct{}, 1) })
}

// Fire отправляет событие, если предыдущее уже прочитано.
func (s *Signal) Fire() {
	s.init()
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// C возвращает канал событий. Каждое событие читается ровно одним получателем.
func (s *Signal) C() <-chan struct{} {
	s.init()
	return s.ch
}

// Drain сбрасывает непрочитанное событие.
func (s *Signal) Drain() {
	s.init()
	select {
	case <-s.ch:
	default:
	}
}
