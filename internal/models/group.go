package models

// Member is one participant of a group. Allocation state keys on the ID;
// the name fields exist only for display.
type Member struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Group is a named set of members as served by the remote API.
// Selecting a group is what makes its members available for payer and
// split toggles in a draft.
type Group struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// HasMember reports whether the given member ID belongs to the group.
func (g *Group) HasMember(memberID string) bool {
	for _, m := range g.Members {
		if m.ID == memberID {
			return true
		}
	}
	return false
}
