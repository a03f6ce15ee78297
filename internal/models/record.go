package models

// Record is a single name/distance entry from the logbook.
type Record struct {
	Name     string `json:"name"`
	Distance int    `json:"distance"` // kilometres, never negative
}

// Share is a record's part of the total amount.
type Share struct {
	Name       string  `json:"name"`
	Distance   int     `json:"distance"`
	Percentage float64 `json:"percentage"` // 0-100, rounded to 2 decimals
	Amount     float64 `json:"amount"`     // rounded to 2 decimals
}

// DirectiveKind tags the settlement variants.
type DirectiveKind string

const (
	DirectiveNoPaymentNeeded DirectiveKind = "no_payment_needed"
	DirectivePayFromTo       DirectiveKind = "pay_from_to"
	DirectiveAwaitInput      DirectiveKind = "await_input"
	DirectiveGenericAdvice   DirectiveKind = "generic_advice"
)

// Directive is the settlement outcome. Payer, Payee and Amount are only
// set for DirectivePayFromTo.
type Directive struct {
	Kind   DirectiveKind `json:"kind"`
	Payer  string        `json:"payer,omitempty"`
	Payee  string        `json:"payee,omitempty"`
	Amount float64       `json:"amount,omitempty"`
}

// DebugLine captures what the parser did with each input line.
type DebugLine struct {
	LineNum int    `json:"lineNum"`
	Text    string `json:"text"`
	Result  string `json:"result"` // "primary", "pairs" or "skipped"
	Records int    `json:"records"`
}

// Status tells the caller what to ask the user next.
type Status string

const (
	StatusOK               Status = "ok"
	StatusAwaitInput       Status = "await_input"        // no text yet
	StatusNeedsManualEntry Status = "needs_manual_entry" // text present, nothing extracted
)

// Result holds everything derived from one pipeline pass.
type Result struct {
	Status        Status      `json:"status"`
	TotalAmount   float64     `json:"totalAmount"`
	TotalDistance int         `json:"totalDistance"`
	Records       []Record    `json:"records"`
	Shares        []Share     `json:"shares"`
	Directive     Directive   `json:"directive"`
	Summary       string      `json:"summary"`
	DebugLines    []DebugLine `json:"debugLines,omitempty"`
}
