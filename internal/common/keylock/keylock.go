package keylock

import (
	"sync"

	"github.com/moby/locker"
	"github.com/rs/zerolog/log"
)

// Locker hands out one mutex per key. Entries are dropped by the
// underlying locker once nobody holds or waits on them, so idle chats do
// not accumulate.
type Locker struct {
	locks *locker.Locker
}

// New creates an empty Locker
func New() *Locker {
	return &Locker{
		locks: locker.New(),
	}
}

// Lock blocks until the key is free and returns the function that releases
// it. Calling the returned function more than once is a no-op.
func (l *Locker) Lock(key string) (unlock func()) {
	l.locks.Lock(key)

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := l.locks.Unlock(key); err != nil {
				log.Error().Err(err).Str("key", key).Msg("failed to release key lock")
			}
		})
	}
}
