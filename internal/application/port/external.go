package port

import (
	"context"

	"github.com/credihub/proposal-flow/internal/domain/entity"
)

// ProposalLookup provides the proposal a flow run operates on. Proposals are
// owned by the surrounding platform; this engine only reads them.
type ProposalLookup interface {
	GetProposal(ctx context.Context, id int64) (*entity.Proposal, error)
}
