package bank

import (
	"context"
	"time"

	"github.com/credihub/proposal-flow/internal/domain/entity"
	"go.uber.org/zap"
)

const bankAPrefix = "BANKA"

// BankA integrates with Banco A, which answers submissions with an immediate
// approval decision.
type BankA struct {
	latency time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewBankA creates the Banco A adapter.
func NewBankA(latency time.Duration, logger *zap.Logger) *BankA {
	return &BankA{latency: latency, now: time.Now, logger: logger}
}

// Code returns the bank code this adapter serves.
func (b *BankA) Code() string {
	return CodeBankA
}

// SubmitProposal submits the proposal to Banco A.
func (b *BankA) SubmitProposal(ctx context.Context, proposal *entity.Proposal) (*entity.BankResponse, error) {
	b.logger.Info("Submitting proposal to Banco A",
		zap.Int64("proposal_id", proposal.ID),
		zap.Float64("requested_amount", proposal.RequestedAmount))

	if err := waitLatency(ctx, b.latency); err != nil {
		return nil, err
	}

	return &entity.BankResponse{
		Success:    true,
		ExternalID: externalID(bankAPrefix, b.now()),
	}, nil
}

// GetProposalStatus queries Banco A for the status of a submitted proposal.
func (b *BankA) GetProposalStatus(ctx context.Context, externalID string) (*ProposalStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.logger.Debug("Fetching proposal status from Banco A", zap.String("external_id", externalID))

	return &ProposalStatus{
		Status:  "APPROVED",
		Details: StatusDetails{Message: "Proposta aprovada pelo Banco A"},
	}, nil
}
