package entity

import "time"

// FlowStep is the current node in a proposal's authorization state machine.
type FlowStep string

const (
	StepValidationOK     FlowStep = "validation_ok"
	StepAwaitingResponse FlowStep = "awaiting_response"
	StepCompleted        FlowStep = "completed"
	StepFailed           FlowStep = "failed"

	// StepUnknown is the implicit step reported when no flow state exists
	// yet for a proposal. It is never stored.
	StepUnknown FlowStep = "unknown"
)

// ProposalStatus is the externally visible status derived from the flow step.
type ProposalStatus string

const (
	StatusOpen       ProposalStatus = "open"
	StatusInAnalysis ProposalStatus = "in_analysis"
	StatusApproved   ProposalStatus = "approved"
	StatusRejected   ProposalStatus = "rejected"
)

// ProposalStatus maps a flow step onto the status vocabulary exposed to
// callers polling the flow.
func (s FlowStep) ProposalStatus() ProposalStatus {
	switch s {
	case StepValidationOK, StepAwaitingResponse:
		return StatusInAnalysis
	case StepCompleted:
		return StatusApproved
	case StepFailed:
		return StatusRejected
	default:
		return StatusOpen
	}
}

// String returns the string representation of the step.
func (s FlowStep) String() string {
	return string(s)
}

// FlowState is the per-proposal record tracked by the flow store, created on
// the first start call for a proposal id and mutated in place afterwards.
//
// Generation fences racing writers: every start and cancel bumps it, and a
// start only commits its post-submission state while the generation it began
// with is still current. Cancel therefore always wins over an in-flight start.
type FlowState struct {
	ProposalID       int64             `json:"proposalId"`
	Step             FlowStep          `json:"step"`
	BankCode         string            `json:"bankCode,omitempty"`
	ValidationResult *ValidationResult `json:"validationResult,omitempty"`
	BankResponse     *BankResponse     `json:"bankResponse,omitempty"`
	Generation       uint64            `json:"generation"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}
