package token

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"tableflip.dev/memories/pkg/store"
)

// Keeper is the process-wide "last known token". It is loaded from storage
// once at startup and afterwards changed only by Remember and Forget, which
// the access validator calls on validation success and failure.
type Keeper struct {
	mu      sync.RWMutex
	store   store.Store
	current string
	log     *logrus.Entry
}

// Load reads the persisted token from s. A read failure leaves the keeper
// empty; the token can always be recovered from the link.
func Load(s store.Store) *Keeper {
	k := &Keeper{
		store: s,
		log:   logrus.WithField("component", "token_keeper"),
	}
	k.Reload()
	return k
}

// Reload re-reads the persisted token, picking up writes from other
// processes.
func (k *Keeper) Reload() {
	if k.store == nil {
		return
	}
	v, err := k.store.Get(store.TokenKey)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		k.log.WithError(err).Debug("read persisted token")
	}
	k.mu.Lock()
	k.current = v
	k.mu.Unlock()
}

// Stored returns the last known token, or "".
func (k *Keeper) Stored() string {
	if k == nil {
		return ""
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.current
}

// Remember persists t as the last validated token. Storage failures are
// tolerated.
func (k *Keeper) Remember(t string) {
	if k == nil {
		return
	}
	k.mu.Lock()
	k.current = t
	k.mu.Unlock()
	if k.store == nil {
		return
	}
	if err := k.store.Set(store.TokenKey, t); err != nil {
		k.log.WithError(err).Debug("persist token")
	}
}

// Forget drops the persisted token. Storage failures are tolerated.
func (k *Keeper) Forget() {
	if k == nil {
		return
	}
	k.mu.Lock()
	k.current = ""
	k.mu.Unlock()
	if k.store == nil {
		return
	}
	if err := k.store.Delete(store.TokenKey); err != nil {
		k.log.WithError(err).Debug("remove persisted token")
	}
}
