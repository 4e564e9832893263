package console

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Loader загружает данные для страницы и применяет результат, только пока
// страница жива. После Close колбэки не вызываются, а запросы в полёте
// отменяются. Первая ошибка загрузки отменяет остальные.
type Loader struct {
	cancel context.CancelFunc
	g      *errgroup.Group
	gctx   context.Context

	mu     sync.Mutex
	closed bool
}

// NewLoader создаёт загрузчик, привязанный к parent. Отмена parent
// отменяет все загрузки.
func NewLoader(parent context.Context) *Loader {
	ctx, cancel := context.WithCancel(parent)
	g, gctx := errgroup.WithContext(ctx)
	return &Loader{cancel: cancel, g: g, gctx: gctx}
}

// Close помечает владельца как уничтоженного. Поздние результаты отбрасываются.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.cancel()
}

// Closed сообщает, был ли вызван Close.
func (l *Loader) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Wait ждёт завершения всех запущенных загрузок и возвращает первую ошибку.
func (l *Loader) Wait() error {
	return l.g.Wait()
}

// deliver вызывает fn под замком, если загрузчик ещё не закрыт.
func (l *Loader) deliver(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	fn()
}

// Load запускает fetch в отдельной горутине и передаёт результат в onResult
// или ошибку в onError, если к этому моменту загрузчик не закрыт.
func Load[T any](l *Loader, fetch func(ctx context.Context) (T, error), onResult func(T), onError func(error)) {
	l.g.Go(func() error {
		v, err := fetch(l.gctx)
		if err != nil {
			if onError != nil {
				l.deliver(func() { onError(err) })
			}
			return err
		}
		l.deliver(func() { onResult(v) })
		return nil
	})
}
