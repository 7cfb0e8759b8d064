package bank

import (
	"context"
	"time"

	"github.com/credihub/proposal-flow/internal/domain/entity"
	"go.uber.org/zap"
)

const bankBPrefix = "BANKB"

// BankB integrates with Banco B, which queues submissions and reports them as
// pending until its own analysts pick them up.
type BankB struct {
	latency time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewBankB creates the Banco B adapter.
func NewBankB(latency time.Duration, logger *zap.Logger) *BankB {
	return &BankB{latency: latency, now: time.Now, logger: logger}
}

// Code returns the bank code this adapter serves.
func (b *BankB) Code() string {
	return CodeBankB
}

// SubmitProposal submits the proposal to Banco B.
func (b *BankB) SubmitProposal(ctx context.Context, proposal *entity.Proposal) (*entity.BankResponse, error) {
	b.logger.Info("Submitting proposal to Banco B",
		zap.Int64("proposal_id", proposal.ID),
		zap.Float64("requested_amount", proposal.RequestedAmount))

	if err := waitLatency(ctx, b.latency); err != nil {
		return nil, err
	}

	return &entity.BankResponse{
		Success:    true,
		ExternalID: externalID(bankBPrefix, b.now()),
	}, nil
}

// GetProposalStatus queries Banco B for the status of a submitted proposal.
func (b *BankB) GetProposalStatus(ctx context.Context, externalID string) (*ProposalStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.logger.Debug("Fetching proposal status from Banco B", zap.String("external_id", externalID))

	return &ProposalStatus{
		Status:  "PENDING",
		Details: StatusDetails{Message: "Proposta em fila de análise no Banco B"},
	}, nil
}
