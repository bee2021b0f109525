package assetmock

import (
	"context"
	"sync"

	domain "realty-escrow/internal/domain/asset"
)

// Gateway is a function-backed mock that satisfies asset.Gateway.
type Gateway struct {
	CurrentOwnerFn func(ctx context.Context, assetID uint64) (string, error)
	TransferFn     func(ctx context.Context, assetID uint64, to string) error
}

func (m *Gateway) CurrentOwner(ctx context.Context, assetID uint64) (string, error) {
	if m.CurrentOwnerFn != nil {
		return m.CurrentOwnerFn(ctx, assetID)
	}
	return "", domain.ErrNotFound
}

func (m *Gateway) Transfer(ctx context.Context, assetID uint64, to string) error {
	if m.TransferFn != nil {
		return m.TransferFn(ctx, assetID, to)
	}
	return nil
}

// InMemory is a map-backed registry for scenario tests that need ownership to
// actually move.
type InMemory struct {
	mu     sync.Mutex
	owners map[uint64]string
}

func NewInMemory(owners map[uint64]string) *InMemory {
	cp := make(map[uint64]string, len(owners))
	for k, v := range owners {
		cp[k] = v
	}
	return &InMemory{owners: cp}
}

func (g *InMemory) CurrentOwner(_ context.Context, assetID uint64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	owner, ok := g.owners[assetID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return owner, nil
}

func (g *InMemory) Transfer(_ context.Context, assetID uint64, to string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.owners[assetID]; !ok {
		return domain.ErrNotFound
	}
	g.owners[assetID] = to
	return nil
}
