// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores ResultBundles keyed by paper identifier for the
// lifetime of a browsing session. The Gateway fronts a Store backend: the
// session-scoped SQLite store when a cache directory is configured and
// usable, otherwise an in-memory map that lives as long as the process.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pdiddy/citation-lens/pkg/types"
)

// keyPrefix namespaces bundle keys inside the backing store.
const keyPrefix = "overlay:"

// Store is a session-scoped key-value backend for serialized bundles.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
	Close() error
}

// Gateway wraps a Store with bundle serialization and the overlay key
// namespace. Backend failures degrade to cache misses or dropped writes;
// a lost entry only costs a re-fetch.
type Gateway struct {
	store  Store
	logger *slog.Logger
}

// New builds a Gateway over the configured backend. A configured cache
// directory selects the SQLite session store; if that cannot be opened the
// gateway falls back to the in-memory store.
func New(cfg types.CacheConfig, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "result-cache")

	if cfg.Dir == "" {
		return &Gateway{store: NewMemory(), logger: logger}
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = types.DefaultSessionTTL
	}
	store, err := NewSQLite(cfg.Dir, ttl)
	if err != nil {
		logger.Warn("session store unavailable, using in-memory cache", "dir", cfg.Dir, "error", err)
		return &Gateway{store: NewMemory(), logger: logger}
	}
	return &Gateway{store: store, logger: logger}
}

// NewWithStore builds a Gateway over an explicit backend (used by tests
// and the serve command).
func NewWithStore(store Store, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{store: store, logger: logger.With("component", "result-cache")}
}

// Get returns the cached bundle for the identifier, or ok=false on a miss.
// Backend and decode errors are logged and reported as misses.
func (g *Gateway) Get(ctx context.Context, id string) (*types.ResultBundle, bool) {
	payload, ok, err := g.store.Get(ctx, keyPrefix+id)
	if err != nil {
		g.logger.Error("cache get failed", "id", id, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var bundle types.ResultBundle
	if err := json.Unmarshal(payload, &bundle); err != nil {
		g.logger.Error("cache unmarshal failed", "id", id, "error", err)
		return nil, false
	}
	g.logger.Debug("cache hit", "id", id)
	return &bundle, true
}

// Put stores the bundle under its identifier. Write failures are logged,
// not surfaced: the bundle is already assembled and usable.
func (g *Gateway) Put(ctx context.Context, id string, bundle *types.ResultBundle) {
	payload, err := json.Marshal(bundle)
	if err != nil {
		g.logger.Error("cache marshal failed", "id", id, "error", err)
		return
	}
	if err := g.store.Put(ctx, keyPrefix+id, payload); err != nil {
		g.logger.Error("cache put failed", "id", id, "error", err)
	}
}

// Keys lists the cached paper identifiers, namespace stripped.
func (g *Gateway) Keys(ctx context.Context) ([]string, error) {
	keys, err := g.store.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cache keys: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		if len(k) > len(keyPrefix) && k[:len(keyPrefix)] == keyPrefix {
			ids = append(ids, k[len(keyPrefix):])
		}
	}
	return ids, nil
}

// Clear drops every cached bundle.
func (g *Gateway) Clear(ctx context.Context) error {
	return g.store.Clear(ctx)
}

// Close releases the backend.
func (g *Gateway) Close() error {
	return g.store.Close()
}

// Memory is a map-backed Store for tests and for runs without a usable
// session directory. Payloads are stored as opaque bytes so cached bundles
// stay immutable: every Get decodes a fresh copy.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.entries[key]
	return payload, ok, nil
}

func (m *Memory) Put(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = payload
	return nil
}

func (m *Memory) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string][]byte)
	return nil
}

func (m *Memory) Close() error { return nil }
