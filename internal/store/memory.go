// Package store provides the flow state backends. The memory store is the
// default; the redis store keeps state out of process so flows survive
// restarts and can be shared between replicas.
package store

import (
	"context"
	"sync"

	"github.com/credihub/proposal-flow/internal/domain/entity"
)

// MemoryStore keeps flow state in a mutex-guarded in-process map.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]*entity.FlowState
}

// NewMemoryStore creates an empty in-memory flow store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[int64]*entity.FlowState)}
}

// Get returns a copy of the stored state, or (nil, nil) when the proposal has
// no state yet.
func (s *MemoryStore) Get(_ context.Context, proposalID int64) (*entity.FlowState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[proposalID]
	if !ok {
		return nil, nil
	}
	return cloneState(state), nil
}

// Put stores a copy of the state under its proposal id, overwriting any
// previous state.
func (s *MemoryStore) Put(_ context.Context, state *entity.FlowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[state.ProposalID] = cloneState(state)
	return nil
}

// Delete removes the state for the proposal id. Deleting an absent entry is
// not an error.
func (s *MemoryStore) Delete(_ context.Context, proposalID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, proposalID)
	return nil
}

// Reset drops all stored state.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states = make(map[int64]*entity.FlowState)
}

// cloneState copies the state so callers never alias the stored value.
func cloneState(state *entity.FlowState) *entity.FlowState {
	clone := *state

	if state.ValidationResult != nil {
		vr := *state.ValidationResult
		vr.Errors = append([]string{}, state.ValidationResult.Errors...)
		vr.Warnings = append([]string{}, state.ValidationResult.Warnings...)
		vr.Recommendations = append([]string{}, state.ValidationResult.Recommendations...)
		clone.ValidationResult = &vr
	}

	if state.BankResponse != nil {
		br := *state.BankResponse
		clone.BankResponse = &br
	}

	return &clone
}
