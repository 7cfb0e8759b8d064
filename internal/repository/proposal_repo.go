package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/credihub/proposal-flow/internal/domain/entity"
	"go.uber.org/zap"
)

// ErrProposalNotFound is returned when no proposal exists for the given id.
var ErrProposalNotFound = errors.New("proposal not found")

// ProposalRepository reads proposals from the platform's SQLite database.
type ProposalRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProposalRepository creates a new proposal repository.
func NewProposalRepository(db *sql.DB, logger *zap.Logger) *ProposalRepository {
	return &ProposalRepository{db: db, logger: logger}
}

// GetProposal loads a proposal with its client and product by id.
func (r *ProposalRepository) GetProposal(ctx context.Context, id int64) (*entity.Proposal, error) {
	query := `
		SELECT p.id, p.requested_amount, p.status,
		       c.id, c.name, COALESCE(c.email, ''), COALESCE(c.cpf, ''),
		       pr.id, pr.name
		FROM proposals p
		JOIN clients c ON c.id = p.client_id
		JOIN products pr ON pr.id = p.product_id
		WHERE p.id = ?
	`

	var proposal entity.Proposal
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&proposal.ID,
		&proposal.RequestedAmount,
		&proposal.Status,
		&proposal.Client.ID,
		&proposal.Client.Name,
		&proposal.Client.Email,
		&proposal.Client.CPF,
		&proposal.Product.ID,
		&proposal.Product.Name,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrProposalNotFound, id)
	}
	if err != nil {
		r.logger.Error("Failed to load proposal", zap.Int64("proposal_id", id), zap.Error(err))
		return nil, fmt.Errorf("query proposal %d: %w", id, err)
	}

	return &proposal, nil
}
