package models

// Share is one member's portion on one side of an expense payload.
// Amount stays a string on the wire; the server parses it.
type Share struct {
	User   string `json:"user"`
	Amount string `json:"amount"`
}

// ExpenseCreate is the payload for one expense-create (or update) call.
// One call is issued per draft in a batch.
type ExpenseCreate struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"` // ISO date, e.g. "2026-08-29"
	Payers []Share `json:"payers"`
	Splits []Share `json:"splits"`
	Group  string  `json:"group"`
}
