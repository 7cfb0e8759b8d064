package repository

import (
	"context"

	"github.com/credihub/proposal-flow/internal/domain/entity"
)

// StaticProposalLookup serves a fixed example proposal for any id. It stands
// in for the platform's proposal service in environments where that service
// is not reachable (local runs, demos).
type StaticProposalLookup struct{}

// NewStaticProposalLookup creates the static lookup.
func NewStaticProposalLookup() *StaticProposalLookup {
	return &StaticProposalLookup{}
}

// GetProposal returns the example proposal, echoing the requested id.
func (l *StaticProposalLookup) GetProposal(_ context.Context, id int64) (*entity.Proposal, error) {
	return &entity.Proposal{
		ID:              id,
		RequestedAmount: 10000,
		Status:          "open",
		Client: entity.Client{
			ID:    1,
			Name:  "Maria da Silva",
			Email: "maria.silva@example.com",
			CPF:   "123.456.789-00",
		},
		Product: entity.Product{
			ID:   1,
			Name: "Crédito Pessoal",
		},
	}, nil
}
