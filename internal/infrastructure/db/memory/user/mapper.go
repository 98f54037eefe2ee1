package user

import (
	domain "user-directory/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		ID:      domain.ID(model.ID),
		Name:    model.Name,
		Surname: model.Surname,
	}

	return u
}

func fromDBModels(models Users) domain.Users {
	us := make(domain.Users, len(models))
	for idx, u := range models {
		us[idx] = fromDBModel(u)
	}

	return us
}

func toDBModel(u *domain.User) *User {
	return &User{
		ID:      int64(u.ID),
		Name:    u.Name,
		Surname: u.Surname,
	}
}
