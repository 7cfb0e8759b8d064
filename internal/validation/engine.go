package validation

import (
	"github.com/credihub/proposal-flow/internal/domain/entity"
	"go.uber.org/zap"
)

// Scoring thresholds. A proposal starts at 100 points and loses points for
// each rule violation; the final score is clamped to [0,100].
const (
	MinRequestedAmount   = 1000.0
	HighValueThreshold   = 100000.0
	EligibilityThreshold = 50
	RecommendationCutoff = 70
	missingEmailPenalty  = 10
	missingCPFPenalty    = 15
	belowMinimumPenalty  = 100
	highValuePenalty     = 20
)

// Engine scores a proposal and decides whether it may proceed to bank
// submission. It is stateless and side-effect free aside from logging, so the
// same proposal always yields the same verdict.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a new validation engine.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Validate scores the proposal and returns the eligibility verdict. It never
// fails: business problems surface as errors and warnings on the result.
func (e *Engine) Validate(proposal *entity.Proposal) *entity.ValidationResult {
	result := &entity.ValidationResult{
		Score:           100,
		Errors:          []string{},
		Warnings:        []string{},
		Recommendations: []string{},
	}

	if proposal.Client.Email == "" {
		result.Score -= missingEmailPenalty
		result.Warnings = append(result.Warnings, "Email não informado")
	}

	if proposal.Client.CPF == "" {
		result.Score -= missingCPFPenalty
		result.Warnings = append(result.Warnings, "CPF não informado")
	}

	if proposal.RequestedAmount < MinRequestedAmount {
		result.Score -= belowMinimumPenalty
		result.Errors = append(result.Errors, "Valor solicitado abaixo do mínimo de R$ 1.000")
	}

	if proposal.RequestedAmount > HighValueThreshold {
		result.Score -= highValuePenalty
		result.Warnings = append(result.Warnings, "Valor acima de R$ 100.000 requer análise adicional")
	}

	if result.Score < 0 {
		result.Score = 0
	}

	result.Eligible = result.Score >= EligibilityThreshold && len(result.Errors) == 0

	if result.Score < RecommendationCutoff {
		result.Recommendations = append(result.Recommendations, "Considere solicitar documentação adicional")
	}

	e.logger.Debug("Proposal validated",
		zap.Int64("proposal_id", proposal.ID),
		zap.Int("score", result.Score),
		zap.Bool("eligible", result.Eligible),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)))

	return result
}
