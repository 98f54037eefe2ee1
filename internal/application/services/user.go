package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-directory/internal/application/ports"
	domain "user-directory/internal/domain/user"
	"user-directory/internal/infrastructure/metrics"
	"user-directory/internal/infrastructure/mq"
	"user-directory/internal/interface/api/rest/dto/user"
)

type UserService struct {
	userRepository domain.Repository
	events         ports.EventPublisher
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger

	// last issued ID; IDs are never reused, even after removal
	lastID atomic.Int64
}

// NewUserService wires the service. events may be nil when the event stream
// is disabled.
func NewUserService(
	userRepository domain.Repository,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		events:         events,
		mCounter:       mCounter,
		logger:         logger,
	}
}

func (us *UserService) AddUser(ctx context.Context, name, surname string) (domain.ID, error) {
	if isBlank(name) || isBlank(surname) {
		us.rejected("AddUser", ErrEmptyName)
		return 0, ErrEmptyName
	}

	id := domain.ID(us.lastID.Add(1))
	u := &domain.User{ID: id, Name: name, Surname: surname}
	if _, err := us.userRepository.Insert(u); err != nil {
		us.logger.Error("failed to add user", zap.Int64("id", int64(id)), zap.Error(err))
		return 0, fmt.Errorf("%w: %w", ErrDuplicateID, err)
	}

	us.logger.Info(fmt.Sprintf("%s added with ID: %d", name, id), zap.Int64("id", int64(id)))
	us.publish(http.MethodPost, *u)
	us.mCounter.WithLabelValues(metrics.UserCreated).Inc()

	return id, nil
}

func (us *UserService) GetUser(ctx context.Context, id domain.ID) (string, error) {
	if id <= 0 {
		us.rejected("GetUser", ErrInvalidID)
		return "", ErrInvalidID
	}

	fullName, ok := us.userRepository.FindByID(id)
	if !ok {
		us.notFound(id)
		return "", ErrUserNotFound
	}

	us.logger.Info("Hello "+fullName, zap.Int64("id", int64(id)))

	return fullName, nil
}

func (us *UserService) RemoveUser(ctx context.Context, id domain.ID) (string, error) {
	if id <= 0 {
		us.rejected("RemoveUser", ErrInvalidID)
		return "", ErrInvalidID
	}

	u, ok := us.userRepository.Remove(id)
	if !ok {
		us.notFound(id)
		return "", ErrUserNotFound
	}

	us.logger.Info(u.Name+" removed successfully", zap.Int64("id", int64(id)))
	us.publish(http.MethodDelete, *u)
	us.mCounter.WithLabelValues(metrics.UserDeleted).Inc()

	return u.Name, nil
}

func (us *UserService) EditUser(ctx context.Context, id domain.ID, newName, newSurname string) error {
	if id <= 0 || isBlank(newName) || isBlank(newSurname) {
		us.rejected("EditUser", ErrInvalidEdit)
		return ErrInvalidEdit
	}

	if !us.userRepository.Update(id, newName, newSurname) {
		us.notFound(id)
		return ErrUserNotFound
	}

	us.logger.Info(fmt.Sprintf("User with ID %d updated successfully", id), zap.Int64("id", int64(id)))
	us.publish(http.MethodPut, domain.User{ID: id, Name: newName, Surname: newSurname})
	us.mCounter.WithLabelValues(metrics.UserUpdated).Inc()

	return nil
}

func (us *UserService) ListAllUsers(ctx context.Context) (domain.Users, error) {
	users := us.userRepository.ListAll()
	if len(users) == 0 {
		us.logger.Info("No users found")
	} else {
		us.logger.Info("All users", zap.Int("count", len(users)))
	}

	return users, nil
}

func (us *UserService) publish(method string, u domain.User) {
	if us.events == nil {
		return
	}
	if !us.events.Publish(mq.NewEvent(method, user.ToResponseUser(u))) {
		us.mCounter.WithLabelValues(metrics.EventsDropped).Inc()
	}
}

func (us *UserService) rejected(op string, err error) {
	us.logger.Info(op+" rejected", zap.Error(err))
	us.mCounter.WithLabelValues(metrics.UserValidationFailed).Inc()
}

func (us *UserService) notFound(id domain.ID) {
	us.logger.Info(fmt.Sprintf("User not found with ID: %d", id), zap.Int64("id", int64(id)))
	us.mCounter.WithLabelValues(metrics.UserNotFound).Inc()
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
