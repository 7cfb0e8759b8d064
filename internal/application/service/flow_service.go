package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/credihub/proposal-flow/internal/application/port"
	"github.com/credihub/proposal-flow/internal/bank"
	"github.com/credihub/proposal-flow/internal/domain/entity"
	"github.com/credihub/proposal-flow/internal/domain/flow"
	"github.com/credihub/proposal-flow/internal/metrics"
	"github.com/credihub/proposal-flow/internal/validation"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Summary reflects the progress of one proposal's authorization flow. The raw
// ValidationResult and BankResponse are only attached for the start call.
type Summary struct {
	ProposalID         int64
	ClientName         string
	ProductName        string
	RequestedAmount    float64
	CurrentStatus      entity.ProposalStatus
	FlowStep           entity.FlowStep
	ValidationScore    int
	ValidationEligible bool
	Errors             []string
	Warnings           []string
	Recommendations    []string
	ValidationResult   *entity.ValidationResult
	BankResponse       *entity.BankResponse
}

// FlowService drives proposals through validation and bank submission and
// answers polling and cancellation requests.
//
// Business failures (ineligible proposal, bank rejection) are reported as
// data on the Summary; returned errors are reserved for infrastructure
// faults such as a failing proposal lookup or store.
type FlowService interface {
	Start(ctx context.Context, proposalID int64, bankCode string) (*Summary, error)
	GetSummary(ctx context.Context, proposalID int64) (*Summary, error)
	Cancel(ctx context.Context, proposalID int64) (string, error)
}

// FlowConfig tunes the orchestrator.
type FlowConfig struct {
	// AdvanceProbability is the chance that one summary poll of a flow in
	// awaiting_response observes the bank decision and completes the flow.
	AdvanceProbability float64

	// Rand supplies the draw for the probabilistic advance. Defaults to
	// math/rand; tests inject a deterministic source.
	Rand func() float64
}

type flowServiceImpl struct {
	store     port.FlowStore
	lookup    port.ProposalLookup
	validator *validation.Engine
	registry  *bank.Registry
	metrics   *metrics.Metrics
	logger    Logger

	advanceProbability float64
	randFloat          func() float64

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewFlowService creates the flow orchestrator.
func NewFlowService(
	cfg FlowConfig,
	store port.FlowStore,
	lookup port.ProposalLookup,
	validator *validation.Engine,
	registry *bank.Registry,
	m *metrics.Metrics,
	logger Logger,
) FlowService {
	if cfg.AdvanceProbability <= 0 {
		cfg.AdvanceProbability = 0.3
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Float64
	}

	return &flowServiceImpl{
		store:              store,
		lookup:             lookup,
		validator:          validator,
		registry:           registry,
		metrics:            m,
		logger:             logger,
		advanceProbability: cfg.AdvanceProbability,
		randFloat:          cfg.Rand,
		locks:              make(map[int64]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing state transitions for one proposal.
func (s *flowServiceImpl) lockFor(proposalID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[proposalID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[proposalID] = lock
	}
	return lock
}

// Start runs the proposal through validation and, if eligible, submits it to
// the bank selected by bankCode. Start is re-entrant: it supersedes any prior
// flow state for the proposal.
func (s *flowServiceImpl) Start(ctx context.Context, proposalID int64, bankCode string) (*Summary, error) {
	proposal, err := s.lookup.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("load proposal %d: %w", proposalID, err)
	}

	result := s.validator.Validate(proposal)

	lock := s.lockFor(proposalID)
	lock.Lock()

	prev, err := s.store.Get(ctx, proposalID)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	generation := uint64(1)
	if prev != nil {
		generation = prev.Generation + 1
	}

	machine := flow.Authorization(entity.StepUnknown)
	state := &entity.FlowState{
		ProposalID:       proposalID,
		BankCode:         bankCode,
		ValidationResult: result,
		Generation:       generation,
		UpdatedAt:        time.Now(),
	}

	if !result.Eligible {
		if err := machine.Fire(flow.TriggerRejectValidation); err != nil {
			lock.Unlock()
			return nil, err
		}
		state.Step = machine.State()
		if err := s.store.Put(ctx, state); err != nil {
			lock.Unlock()
			return nil, err
		}
		lock.Unlock()

		s.metrics.FlowStarts.WithLabelValues(bankCode, "ineligible").Inc()
		s.metrics.FlowTransitions.WithLabelValues(state.Step.String()).Inc()
		s.logger.Info("Proposal rejected by validation",
			"proposal_id", proposalID, "score", result.Score, "errors", len(result.Errors))

		return s.buildSummary(proposal, state, true), nil
	}

	if err := machine.Fire(flow.TriggerApproveValidation); err != nil {
		lock.Unlock()
		return nil, err
	}
	state.Step = machine.State()
	if err := s.store.Put(ctx, state); err != nil {
		lock.Unlock()
		return nil, err
	}
	lock.Unlock()

	s.metrics.FlowTransitions.WithLabelValues(state.Step.String()).Inc()

	// The bank call runs outside the per-proposal lock so a cancel issued
	// during the simulated latency is never blocked behind it.
	adapter := s.registry.Resolve(bankCode)

	began := time.Now()
	response, err := adapter.SubmitProposal(ctx, proposal)
	s.metrics.BankSubmitDuration.WithLabelValues(adapter.Code()).Observe(time.Since(began).Seconds())
	if err != nil {
		return nil, fmt.Errorf("submit proposal %d to %s: %w", proposalID, adapter.Code(), err)
	}

	lock.Lock()
	defer lock.Unlock()

	current, err := s.store.Get(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if current == nil || current.Generation != generation {
		// A cancel or newer start landed while the bank call was in
		// flight; its state wins and this result is discarded.
		s.logger.Warn("Discarding stale bank submission result",
			"proposal_id", proposalID, "bank_code", adapter.Code())
		return s.buildSummary(proposal, current, true), nil
	}

	machine = flow.Authorization(current.Step)
	trigger := flow.TriggerSubmitAccepted
	outcome := "submitted"
	if !response.Success {
		trigger = flow.TriggerSubmitRejected
		outcome = "bank_rejected"
	}
	if err := machine.Fire(trigger); err != nil {
		return nil, err
	}

	current.Step = machine.State()
	current.BankResponse = response
	current.UpdatedAt = time.Now()
	if err := s.store.Put(ctx, current); err != nil {
		return nil, err
	}

	s.metrics.FlowStarts.WithLabelValues(bankCode, outcome).Inc()
	s.metrics.FlowTransitions.WithLabelValues(current.Step.String()).Inc()
	s.logger.Info("Proposal submitted to bank",
		"proposal_id", proposalID,
		"bank_code", adapter.Code(),
		"success", response.Success,
		"external_id", response.ExternalID)

	return s.buildSummary(proposal, current, true), nil
}

// GetSummary reports the current flow state. While the flow is awaiting the
// bank's response, each poll has a fixed chance of observing the decision and
// completing the flow; a completed flow never regresses.
func (s *flowServiceImpl) GetSummary(ctx context.Context, proposalID int64) (*Summary, error) {
	proposal, err := s.lookup.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("load proposal %d: %w", proposalID, err)
	}

	lock := s.lockFor(proposalID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.store.Get(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if state != nil && state.Step == entity.StepAwaitingResponse && s.randFloat() < s.advanceProbability {
		machine := flow.Authorization(state.Step)
		if err := machine.Fire(flow.TriggerComplete); err != nil {
			return nil, err
		}
		state.Step = machine.State()
		state.UpdatedAt = time.Now()
		if err := s.store.Put(ctx, state); err != nil {
			return nil, err
		}

		s.metrics.FlowTransitions.WithLabelValues(state.Step.String()).Inc()
		s.logger.Info("Bank decision received, flow completed", "proposal_id", proposalID)
	}

	return s.buildSummary(proposal, state, false), nil
}

// Cancel forces the flow to failed, whatever its current step. The stored
// validation result and bank response are preserved, and the generation bump
// guarantees a late-arriving start completion cannot resurrect the flow.
func (s *flowServiceImpl) Cancel(ctx context.Context, proposalID int64) (string, error) {
	lock := s.lockFor(proposalID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.store.Get(ctx, proposalID)
	if err != nil {
		return "", err
	}

	initial := entity.StepUnknown
	if state == nil {
		state = &entity.FlowState{ProposalID: proposalID}
	} else {
		initial = state.Step
	}

	machine := flow.Authorization(initial)
	if err := machine.Fire(flow.TriggerCancel); err != nil {
		return "", err
	}

	state.Step = machine.State()
	state.Generation++
	state.UpdatedAt = time.Now()
	if err := s.store.Put(ctx, state); err != nil {
		return "", err
	}

	s.metrics.FlowCancellations.Inc()
	s.logger.Info("Authorization flow cancelled", "proposal_id", proposalID)

	return fmt.Sprintf("Fluxo de autorização da proposta %d cancelado", proposalID), nil
}

// buildSummary assembles the summary DTO, synthesizing defaults when the
// proposal has no flow state yet.
func (s *flowServiceImpl) buildSummary(proposal *entity.Proposal, state *entity.FlowState, includeRaw bool) *Summary {
	summary := &Summary{
		ProposalID:      proposal.ID,
		ClientName:      proposal.Client.Name,
		ProductName:     proposal.Product.Name,
		RequestedAmount: proposal.RequestedAmount,
		FlowStep:        entity.StepUnknown,
		Errors:          []string{},
		Warnings:        []string{},
		Recommendations: []string{},
	}

	if state != nil {
		summary.FlowStep = state.Step

		if vr := state.ValidationResult; vr != nil {
			summary.ValidationScore = vr.Score
			summary.ValidationEligible = vr.Eligible
			summary.Errors = vr.Errors
			summary.Warnings = vr.Warnings
			summary.Recommendations = vr.Recommendations
		}

		if includeRaw {
			summary.ValidationResult = state.ValidationResult
			summary.BankResponse = state.BankResponse
		}
	}

	summary.CurrentStatus = summary.FlowStep.ProposalStatus()
	return summary
}
