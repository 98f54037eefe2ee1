package user

import (
	"user-directory/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	var u = User{
		ID:      int64(uDomain.ID),
		Name:    uDomain.Name,
		Surname: uDomain.Surname,
	}

	return u
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}
