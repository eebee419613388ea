package store

import (
	"context"
	"fmt"
	"sync"

	"shogi/internal/server/game"
)

// Memory 进程内存储，存取都做深拷贝。
type Memory struct {
	mu    sync.RWMutex
	games map[string]*game.GameState
}

func NewMemory() *Memory {
	return &Memory{games: make(map[string]*game.GameState)}
}

func (m *Memory) Save(_ context.Context, g *game.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g.Clone()
	return nil
}

func (m *Memory) Load(_ context.Context, id string) (*game.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", game.ErrGameNotFound, id)
	}
	return g.Clone(), nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Recorder 把结束的对局留在内存里，没有配置 MongoDB 时使用。
type Recorder struct {
	mu    sync.Mutex
	games []*game.GameState
}

func (r *Recorder) Archive(_ context.Context, g *game.GameState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games = append(r.games, g.Clone())
	return nil
}

func (r *Recorder) Games() []*game.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*game.GameState(nil), r.games...)
}
