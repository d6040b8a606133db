package viewstate

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Scope ограничивает время жизни операций контроллера.
// После Close контекст операций отменен, а их запоздалые результаты не должны применяться.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	group  singleflight.Group
}

// NewScope создает область, дочернюю к parent.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context возвращает контекст области.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Done закрывается при закрытии области.
func (s *Scope) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Closed сообщает, закрыта ли область.
func (s *Scope) Closed() bool {
	return s.ctx.Err() != nil
}

// Go запускает fn в отдельной горутине с контекстом области.
func (s *Scope) Go(fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

// Bind возвращает контекст, который отменяется и вместе с ctx, и вместе с областью.
func (s *Scope) Bind(ctx context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}

// Once выполняет fn один раз для всех одновременных вызовов с одинаковым ключом.
// shared == true у вызовов, которые получили результат чужого выполнения.
func (s *Scope) Once(key string, fn func() error) (shared bool, err error) {
	_, err, shared = s.group.Do(key, func() (any, error) {
		return nil, fn()
	})
	return shared, err
}

// Wait ждет завершения всех горутин, запущенных через Go.
func (s *Scope) Wait() {
	s.wg.Wait()
}

// Close отменяет контекст области. Не ждет завершения горутин.
func (s *Scope) Close() {
	s.cancel()
}
