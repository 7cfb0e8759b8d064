package flow

import (
	"fmt"

	"github.com/credihub/proposal-flow/internal/domain/entity"
)

var validSteps = map[entity.FlowStep]bool{
	entity.StepUnknown:          true,
	entity.StepValidationOK:     true,
	entity.StepAwaitingResponse: true,
	entity.StepCompleted:        true,
	entity.StepFailed:           true,
}

// Machine tracks the current flow step and validates transitions against a
// fixed transition table.
type Machine struct {
	current     entity.FlowStep
	transitions map[entity.FlowStep]map[Trigger]entity.FlowStep
}

// Builder assembles the transition table for a Machine.
type Builder struct {
	transitions map[entity.FlowStep]map[Trigger]entity.FlowStep
}

// StepConfig configures the outgoing transitions of a single step.
type StepConfig struct {
	builder *Builder
	from    entity.FlowStep
}

// NewBuilder creates an empty state machine builder.
func NewBuilder() *Builder {
	return &Builder{
		transitions: make(map[entity.FlowStep]map[Trigger]entity.FlowStep),
	}
}

// Configure returns the configuration for the given step.
func (b *Builder) Configure(step entity.FlowStep) *StepConfig {
	if !validSteps[step] {
		panic(fmt.Errorf("%w: %s", ErrInvalidStep, step))
	}
	if _, ok := b.transitions[step]; !ok {
		b.transitions[step] = make(map[Trigger]entity.FlowStep)
	}
	return &StepConfig{builder: b, from: step}
}

// Permit allows the trigger to transition from the configured step to the
// target step.
func (c *StepConfig) Permit(trigger Trigger, to entity.FlowStep) *StepConfig {
	if !validSteps[to] {
		panic(fmt.Errorf("%w: %s", ErrInvalidStep, to))
	}
	c.builder.transitions[c.from][trigger] = to
	return c
}

// Build creates a machine positioned at the given initial step. The
// transition table is copied so the builder can be reused.
func (b *Builder) Build(initial entity.FlowStep) *Machine {
	if !validSteps[initial] {
		panic(fmt.Errorf("%w: %s", ErrInvalidStep, initial))
	}

	copied := make(map[entity.FlowStep]map[Trigger]entity.FlowStep, len(b.transitions))
	for from, byTrigger := range b.transitions {
		inner := make(map[Trigger]entity.FlowStep, len(byTrigger))
		for trigger, to := range byTrigger {
			inner[trigger] = to
		}
		copied[from] = inner
	}

	return &Machine{current: initial, transitions: copied}
}

// Authorization builds the proposal authorization machine positioned at the
// given step. StepUnknown is the entry node for proposals with no stored
// state; cancel is permitted from every step and always lands on failed.
func Authorization(initial entity.FlowStep) *Machine {
	b := NewBuilder()

	b.Configure(entity.StepUnknown).
		Permit(TriggerApproveValidation, entity.StepValidationOK).
		Permit(TriggerRejectValidation, entity.StepFailed).
		Permit(TriggerCancel, entity.StepFailed)

	b.Configure(entity.StepValidationOK).
		Permit(TriggerSubmitAccepted, entity.StepAwaitingResponse).
		Permit(TriggerSubmitRejected, entity.StepFailed).
		Permit(TriggerCancel, entity.StepFailed)

	b.Configure(entity.StepAwaitingResponse).
		Permit(TriggerComplete, entity.StepCompleted).
		Permit(TriggerCancel, entity.StepFailed)

	b.Configure(entity.StepCompleted).
		Permit(TriggerCancel, entity.StepFailed)

	b.Configure(entity.StepFailed).
		Permit(TriggerCancel, entity.StepFailed)

	return b.Build(initial)
}

// State returns the current step.
func (m *Machine) State() entity.FlowStep {
	return m.current
}

// CanFire reports whether the trigger is permitted in the current step.
func (m *Machine) CanFire(trigger Trigger) bool {
	byTrigger, ok := m.transitions[m.current]
	if !ok {
		return false
	}
	_, ok = byTrigger[trigger]
	return ok
}

// Fire executes the trigger, transitioning to the target step if allowed.
func (m *Machine) Fire(trigger Trigger) error {
	byTrigger, ok := m.transitions[m.current]
	if !ok {
		return fmt.Errorf("%w: trigger %s from step %s", ErrInvalidTransition, trigger, m.current)
	}
	to, ok := byTrigger[trigger]
	if !ok {
		return fmt.Errorf("%w: trigger %s from step %s", ErrInvalidTransition, trigger, m.current)
	}
	m.current = to
	return nil
}

// PermittedTriggers returns all triggers that can be fired in the current step.
func (m *Machine) PermittedTriggers() []Trigger {
	byTrigger, ok := m.transitions[m.current]
	if !ok {
		return []Trigger{}
	}
	triggers := make([]Trigger, 0, len(byTrigger))
	for trigger := range byTrigger {
		triggers = append(triggers, trigger)
	}
	return triggers
}
