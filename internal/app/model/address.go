package model

// Address is one shipping address entry as held by the backend.
type Address struct {
	ID   string `json:"_id"`
	Text string `json:"address"`
}

// AddressBook is the session-scoped view of the user's addresses plus
// the currently selected entry. SelectedID, when non-empty, references
// an ID present in Entries; deletes clear a dangling selection.
type AddressBook struct {
	Entries    []Address `json:"entries"`
	SelectedID string    `json:"selected_id"`
}

// Contains reports whether the book has an entry with the given ID.
func (b AddressBook) Contains(id string) bool {
	for _, a := range b.Entries {
		if a.ID == id {
			return true
		}
	}
	return false
}
