package user

// Repository is the record store contract. Every method is atomic on its own
// and safe for concurrent use; returned records are copies.
type Repository interface {
	// Insert stores u unless its ID is already taken and returns the stored name.
	Insert(u *User) (string, error)
	// FindByID returns "name surname" for id.
	FindByID(id ID) (string, bool)
	// Delete removes id and returns the removed name.
	Delete(id ID) (string, bool)
	// Remove removes id and returns a copy of the removed record.
	Remove(id ID) (*User, bool)
	// Update replaces name and surname of an existing record.
	Update(id ID, name, surname string) bool
	ListAll() Users
}
