package flow

// Trigger represents an event that moves a proposal through the
// authorization state machine.
type Trigger string

const (
	TriggerApproveValidation Trigger = "APPROVE_VALIDATION"
	TriggerRejectValidation  Trigger = "REJECT_VALIDATION"
	TriggerSubmitAccepted    Trigger = "SUBMIT_ACCEPTED"
	TriggerSubmitRejected    Trigger = "SUBMIT_REJECTED"
	TriggerComplete          Trigger = "COMPLETE"
	TriggerCancel            Trigger = "CANCEL"
)

// String returns the string representation of the trigger.
func (t Trigger) String() string {
	return string(t)
}
