package user

type (
	ID   int64
	User struct {
		ID      ID
		Name    string
		Surname string
	}
	Users []*User
)

// FullName joins name and surname with a single space.
func (u User) FullName() string { return u.Name + " " + u.Surname }
