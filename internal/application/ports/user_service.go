package ports

import (
	"context"

	"user-directory/internal/domain/user"
)

type UserService interface {
	AddUser(ctx context.Context, name, surname string) (user.ID, error)
	GetUser(ctx context.Context, id user.ID) (string, error)
	RemoveUser(ctx context.Context, id user.ID) (string, error)
	EditUser(ctx context.Context, id user.ID, newName, newSurname string) error
	ListAllUsers(ctx context.Context) (user.Users, error)
}
