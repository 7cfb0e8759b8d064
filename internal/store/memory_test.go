package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credihub/proposal-flow/internal/domain/entity"
)

func sampleState(proposalID int64) *entity.FlowState {
	return &entity.FlowState{
		ProposalID: proposalID,
		Step:       entity.StepAwaitingResponse,
		BankCode:   "bankA",
		ValidationResult: &entity.ValidationResult{
			Eligible:        true,
			Score:           100,
			Errors:          []string{},
			Warnings:        []string{},
			Recommendations: []string{},
		},
		BankResponse: &entity.BankResponse{Success: true, ExternalID: "BANKA_123"},
		Generation:   1,
	}
}

func TestMemoryStore_GetAbsent(t *testing.T) {
	s := NewMemoryStore()

	state, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleState(1)))

	state, err := s.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, entity.StepAwaitingResponse, state.Step)
	assert.Equal(t, "BANKA_123", state.BankResponse.ExternalID)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleState(1)))

	first, err := s.Get(ctx, 1)
	require.NoError(t, err)

	// Mutating the returned state must not leak into the store
	first.Step = entity.StepFailed
	first.ValidationResult.Score = 0
	first.ValidationResult.Errors = append(first.ValidationResult.Errors, "boom")

	second, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StepAwaitingResponse, second.Step)
	assert.Equal(t, 100, second.ValidationResult.Score)
	assert.Empty(t, second.ValidationResult.Errors)
}

func TestMemoryStore_PutStoresCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	state := sampleState(1)
	require.NoError(t, s.Put(ctx, state))

	state.Step = entity.StepFailed

	stored, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StepAwaitingResponse, stored.Step)
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleState(1)))

	updated := sampleState(1)
	updated.Step = entity.StepCompleted
	updated.Generation = 2
	require.NoError(t, s.Put(ctx, updated))

	state, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StepCompleted, state.Step)
	assert.Equal(t, uint64(2), state.Generation)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleState(1)))
	require.NoError(t, s.Delete(ctx, 1))

	state, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, state)

	// Deleting an absent entry is not an error
	require.NoError(t, s.Delete(ctx, 99))
}

func TestMemoryStore_Reset(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleState(1)))
	require.NoError(t, s.Put(ctx, sampleState(2)))

	s.Reset()

	for _, id := range []int64{1, 2} {
		state, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, state)
	}
}
