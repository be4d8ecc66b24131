package repository

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Solo/internal/match"
	"sync"
)

type memoryGameRepository struct {
	mu    sync.RWMutex
	games map[string]match.Snapshot
}

// NewMemoryGameRepository creates a GameRepository held in process memory.
func NewMemoryGameRepository() GameRepository {
	return &memoryGameRepository{games: make(map[string]match.Snapshot)}
}

func (r *memoryGameRepository) Save(_ context.Context, id string, s match.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[id] = s
	return nil
}

func (r *memoryGameRepository) FindByID(_ context.Context, id string) (match.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.games[id]
	if !ok {
		return match.Snapshot{}, ErrGameNotFound
	}
	return s, nil
}

func (r *memoryGameRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, id)
	return nil
}
