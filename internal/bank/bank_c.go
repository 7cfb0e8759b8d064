package bank

import (
	"context"
	"time"

	"github.com/credihub/proposal-flow/internal/domain/entity"
	"go.uber.org/zap"
)

const bankCPrefix = "BANKC"

// BankC integrates with Banco C, where every submission goes through manual
// analysis before a decision is made.
type BankC struct {
	latency time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewBankC creates the Banco C adapter.
func NewBankC(latency time.Duration, logger *zap.Logger) *BankC {
	return &BankC{latency: latency, now: time.Now, logger: logger}
}

// Code returns the bank code this adapter serves.
func (b *BankC) Code() string {
	return CodeBankC
}

// SubmitProposal submits the proposal to Banco C.
func (b *BankC) SubmitProposal(ctx context.Context, proposal *entity.Proposal) (*entity.BankResponse, error) {
	b.logger.Info("Submitting proposal to Banco C",
		zap.Int64("proposal_id", proposal.ID),
		zap.Float64("requested_amount", proposal.RequestedAmount))

	if err := waitLatency(ctx, b.latency); err != nil {
		return nil, err
	}

	return &entity.BankResponse{
		Success:    true,
		ExternalID: externalID(bankCPrefix, b.now()),
	}, nil
}

// GetProposalStatus queries Banco C for the status of a submitted proposal.
func (b *BankC) GetProposalStatus(ctx context.Context, externalID string) (*ProposalStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.logger.Debug("Fetching proposal status from Banco C", zap.String("external_id", externalID))

	return &ProposalStatus{
		Status:  "IN_ANALYSIS",
		Details: StatusDetails{Message: "Proposta em análise manual no Banco C"},
	}, nil
}
