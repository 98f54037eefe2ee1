package user

type (
	User struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Surname string `json:"surname"`
	}
	Users []User
)
