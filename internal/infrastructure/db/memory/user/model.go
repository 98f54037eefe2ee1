package user

type (
	User struct {
		ID      int64
		Name    string
		Surname string
	}
	Users []*User
)
