package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/domain"
)

// keyLocker exclusión mutua en proceso por clave (id de documento).
// Las entradas se liberan cuando nadie las espera.
type keyLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func newKeyLocker() *keyLocker {
	return &keyLocker{locks: make(map[string]*keyLock)}
}

// Lock adquiere la clave o falla con *domain.ConcurrencyConflictError al vencer timeout.
func (k *keyLocker) Lock(ctx context.Context, key string, timeout time.Duration) (func(), error) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case l.ch <- struct{}{}:
		return func() {
			<-l.ch
			k.release(key, l)
		}, nil
	case <-timer.C:
		k.release(key, l)
		return nil, &domain.ConcurrencyConflictError{Resource: "documento " + key, Reason: "otra operación mantiene el bloqueo"}
	case <-ctx.Done():
		k.release(key, l)
		return nil, ctx.Err()
	}
}

func (k *keyLocker) release(key string, l *keyLock) {
	k.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()
}
