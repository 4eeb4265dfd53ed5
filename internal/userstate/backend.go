package userstate

import (
	"context"
	"sync"

	"github.com/AbdulWasayUl/country-explorer/internal/errs"
	"github.com/rotisserie/eris"
)

// DefaultKey is the name of the durable slot holding the snapshot.
const DefaultKey = "country-storage"

// Backend is a durable key-value slot. Load returns errs.ErrNotFound when
// nothing has been saved under key.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close(ctx context.Context) error
}

// MemoryBackend keeps snapshots in process. It is the backend for tests and
// for STATE_BACKEND=memory.
type MemoryBackend struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{slots: make(map[string][]byte)}
}

func (m *MemoryBackend) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.slots[key]
	if !ok {
		return nil, eris.Wrapf(errs.ErrNotFound, "slot %s", key)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryBackend) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBackend) Close(context.Context) error { return nil }
