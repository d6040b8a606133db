// Package controller содержит контроллеры экранов: каждый владеет одной записью состояния,
// вызывает шлюз API и сводит результат в свое состояние.
//
// Все операции работают по одной схеме: Loading=true, один вызов шлюза,
// при успехе результат применяется к состоянию, при ошибке заполняется Error,
// в конце Loading=false. Ошибки не возвращаются вызывающему и не очищаются
// автоматически: для этого есть ClearError.
package controller

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/maynagashev/inventory/client/internal/apperr"
	"github.com/maynagashev/inventory/client/internal/viewstate"
)

// Ключи параметров навигации.
const (
	ParamCategoryID   = "categoryId"
	ParamRentalItemID = "rentalItemId"
)

// Params - параметры пути, переданные навигацией.
type Params map[string]string

// ID возвращает числовой параметр. Для отсутствующего или нечислового значения - 0.
func (p Params) ID(key string) int64 {
	id, err := strconv.ParseInt(p[key], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Option настраивает контроллер.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger задает логгер контроллера. По умолчанию slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// base - общая часть контроллеров: запись состояния и время жизни.
type base[S any] struct {
	scope *viewstate.Scope
	store *viewstate.Store[S]
	log   *slog.Logger
}

func newBase[S any](ctx context.Context, initial S, name string, opts []Option) base[S] {
	o := buildOptions(opts)
	return base[S]{
		scope: viewstate.NewScope(ctx),
		store: viewstate.NewStore(initial),
		log:   o.logger.With("controller", name),
	}
}

// State возвращает текущий снимок состояния.
func (b *base[S]) State() S {
	return b.store.Get()
}

// Subscribe подписывает на новые снимки состояния.
func (b *base[S]) Subscribe() (<-chan S, func()) {
	return b.store.Subscribe()
}

// Wait ждет завершения фоновых операций, запущенных при создании.
func (b *base[S]) Wait() {
	b.scope.Wait()
}

// Close завершает жизнь контроллера: выполняющиеся операции отменяются,
// их результаты больше не попадают в состояние.
func (b *base[S]) Close() {
	b.scope.Close()
	b.store.Close()
}

func (b *base[S]) update(fn func(S) S) {
	b.store.Update(fn)
}

// statusOf выбирает в записи состояния поля загрузки и ошибки, к которым относится операция.
type statusOf[S any] func(*S) *viewstate.Status

// run выполняет одну операцию. Одновременные вызовы с тем же key выполняются один раз.
// call возвращает функцию применения результата к состоянию. Ошибка попадает только в состояние.
func (b *base[S]) run(
	ctx context.Context,
	key string,
	status statusOf[S],
	call func(ctx context.Context) (func(S) S, error),
) {
	shared, _ := b.scope.Once(key, func() error {
		ctx, cancel := b.scope.Bind(ctx)
		defer cancel()

		b.update(func(s S) S {
			status(&s).Loading = true
			return s
		})
		b.log.Debug("Операция начата", "op", key)

		apply, err := call(ctx)

		b.update(func(s S) S {
			if err != nil {
				status(&s).Error = apperr.Message(err)
			} else if apply != nil {
				s = apply(s)
			}
			status(&s).Loading = false
			return s
		})
		if err != nil {
			b.log.Warn("Операция завершилась ошибкой", "op", key, "error", err)
		}
		return err
	})
	if shared {
		b.log.Debug("Повторный вызов присоединен к выполняющейся операции", "op", key)
	}
}

// fail записывает ошибку без вызова шлюза (например, не заполнена форма).
func (b *base[S]) fail(status statusOf[S], err error) {
	b.log.Debug("Операция отклонена", "error", err)
	b.update(func(s S) S {
		status(&s).Error = apperr.Message(err)
		return s
	})
}

// clear очищает ошибку.
func (b *base[S]) clear(status statusOf[S]) {
	b.update(func(s S) S {
		status(&s).Error = ""
		return s
	})
}

// completion - одноразовое событие успешного завершения формы.
type completion struct {
	sig viewstate.Signal
}

// Completed возвращает канал, в который приходит событие успешного завершения.
func (c *completion) Completed() <-chan struct{} {
	return c.sig.C()
}

// field - поле формы, обязательное для отправки.
type field struct {
	name  string
	value string
}

// required возвращает ValidationError для первого пустого поля.
func required(fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return &apperr.ValidationError{Field: f.name}
		}
	}
	return nil
}
