package port

import (
	"context"

	"github.com/credihub/proposal-flow/internal/domain/entity"
)

// FlowStore is the keyed store holding the flow state of every proposal the
// engine has seen. Get returns (nil, nil) for proposals with no state yet;
// that absence is the implicit initial step of the flow.
type FlowStore interface {
	Get(ctx context.Context, proposalID int64) (*entity.FlowState, error)
	Put(ctx context.Context, state *entity.FlowState) error
	Delete(ctx context.Context, proposalID int64) error
}
