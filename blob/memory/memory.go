// Package memory holds the document blob in process memory. It backs dev
// mode and tests; state is lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/vlnch/anonbox/blob"
)

type MemoryTransport struct {
	mu      sync.RWMutex
	content []byte
}

func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{}
}

func (m *MemoryTransport) Get(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.content == nil {
		return nil, blob.ErrNotFound
	}

	out := make([]byte, len(m.content))
	copy(out, m.content)
	return out, nil
}

func (m *MemoryTransport) Patch(ctx context.Context, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.content = make([]byte, len(content))
	copy(m.content, content)
	return nil
}

// Seed overwrites the stored blob directly, bypassing Patch. Tests use it to
// plant corrupt or pre-existing document content.
func (m *MemoryTransport) Seed(content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = content
}
