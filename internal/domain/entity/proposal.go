package entity

// Client is the applicant behind a credit proposal. Email and CPF are
// optional; their absence is penalized by the validation engine.
type Client struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	CPF   string `json:"cpf,omitempty"`
}

// Product is the credit product the proposal was opened for.
type Product struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Proposal is the credit application routed through validation and bank
// submission. It is read-only input for the duration of a flow run.
type Proposal struct {
	ID              int64   `json:"id"`
	RequestedAmount float64 `json:"requestedAmount"`
	Status          string  `json:"status"`
	Client          Client  `json:"client"`
	Product         Product `json:"product"`
}

// ValidationResult is the verdict produced by the validation engine.
// Score is always in [0,100] and Eligible holds exactly when the score is at
// least 50 and no errors were recorded.
type ValidationResult struct {
	Eligible        bool     `json:"eligible"`
	Score           int      `json:"score"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`
}

// BankResponse is the outcome of a proposal submission to an external bank.
// ExternalID is set iff Success; Error is set iff not Success.
type BankResponse struct {
	Success    bool   `json:"success"`
	ExternalID string `json:"externalId,omitempty"`
	Error      string `json:"error,omitempty"`
}
