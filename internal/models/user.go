package models

// User is the authenticated user as reported by the remote API.
// The engine uses it to pre-select a default payer when a group is chosen.
type User struct {
	// ID is the server-assigned identifier, matching Member.ID within groups.
	ID string `json:"id"`

	// Username is the login name, shown in member pickers.
	Username string `json:"username"`
}
