package bank

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/credihub/proposal-flow/internal/domain/entity"
)

func testProposal() *entity.Proposal {
	return &entity.Proposal{
		ID:              42,
		RequestedAmount: 10000,
		Client:          entity.Client{ID: 1, Name: "Maria da Silva"},
		Product:         entity.Product{ID: 1, Name: "Crédito Pessoal"},
	}
}

func TestAdapters_SubmitProposal(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name       string
		adapter    Adapter
		wantCode   string
		wantPrefix string
	}{
		{"banco A", NewBankA(0, logger), CodeBankA, "BANKA_"},
		{"banco B", NewBankB(0, logger), CodeBankB, "BANKB_"},
		{"banco C", NewBankC(0, logger), CodeBankC, "BANKC_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.adapter.Code())

			response, err := tt.adapter.SubmitProposal(context.Background(), testProposal())
			require.NoError(t, err)

			assert.True(t, response.Success)
			assert.True(t, strings.HasPrefix(response.ExternalID, tt.wantPrefix),
				"external id %q should start with %q", response.ExternalID, tt.wantPrefix)
			assert.Empty(t, response.Error)
		})
	}
}

func TestAdapters_GetProposalStatus(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name       string
		adapter    Adapter
		wantStatus string
	}{
		{"banco A approves", NewBankA(0, logger), "APPROVED"},
		{"banco B queues", NewBankB(0, logger), "PENDING"},
		{"banco C analyses", NewBankC(0, logger), "IN_ANALYSIS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := tt.adapter.GetProposalStatus(context.Background(), "BANKX_123")
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, status.Status)
			assert.NotEmpty(t, status.Details.Message)
		})
	}
}

func TestAdapter_SubmitProposalHonorsCancellation(t *testing.T) {
	adapter := NewBankA(5*time.Second, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.SubmitProposal(ctx, testProposal())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistry_Resolve(t *testing.T) {
	logger := zap.NewNop()
	fallback := NewBankA(0, logger)

	registry := NewRegistry(fallback, logger)
	registry.Register(NewBankB(0, logger))
	registry.Register(NewBankC(0, logger))

	tests := []struct {
		code     string
		wantCode string
	}{
		{CodeBankA, CodeBankA},
		{CodeBankB, CodeBankB},
		{CodeBankC, CodeBankC},
		// Unknown codes resolve to the default adapter instead of failing
		{"unknown-code", CodeBankA},
		{"", CodeBankA},
		{"BANKA", CodeBankA},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, registry.Resolve(tt.code).Code())
		})
	}
}

func TestRegistry_SupportedBanks(t *testing.T) {
	logger := zap.NewNop()

	registry := NewRegistry(NewBankA(0, logger), logger)
	registry.Register(NewBankC(0, logger))
	registry.Register(NewBankB(0, logger))

	assert.Equal(t, []string{CodeBankA, CodeBankB, CodeBankC}, registry.SupportedBanks())
}
