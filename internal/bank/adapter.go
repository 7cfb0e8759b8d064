// Package bank contains the adapters for the external bank services a
// proposal can be submitted to. Every adapter simulates the network and
// processing latency of its bank; variants differ only in their id prefix and
// status vocabulary.
package bank

import (
	"context"
	"fmt"
	"time"

	"github.com/credihub/proposal-flow/internal/domain/entity"
)

// Bank codes accepted by the registry.
const (
	CodeBankA = "bankA"
	CodeBankB = "bankB"
	CodeBankC = "bankC"
)

// StatusDetails carries the human-readable part of a bank status report.
type StatusDetails struct {
	Message string `json:"message"`
}

// ProposalStatus is the status reported by a bank for a submitted proposal.
// Each bank has its own status vocabulary.
type ProposalStatus struct {
	Status  string        `json:"status"`
	Details StatusDetails `json:"details"`
}

// Adapter is the uniform capability of submitting a proposal to one external
// bank and querying its status there.
//
// SubmitProposal reports bank rejections as data on the BankResponse, never
// as an error; the returned error is reserved for infrastructure faults such
// as context cancellation.
type Adapter interface {
	Code() string
	SubmitProposal(ctx context.Context, proposal *entity.Proposal) (*entity.BankResponse, error)
	GetProposalStatus(ctx context.Context, externalID string) (*ProposalStatus, error)
}

// waitLatency blocks for the simulated bank latency, honoring cancellation.
func waitLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// externalID fabricates the bank-side id for a submission.
func externalID(prefix string, at time.Time) string {
	return fmt.Sprintf("%s_%d", prefix, at.UnixMilli())
}
