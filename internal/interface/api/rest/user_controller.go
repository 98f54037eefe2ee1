package rest

import (
	"errors"
	"fmt"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-directory/internal/application/ports"
	"user-directory/internal/application/services"
	domain "user-directory/internal/domain/user"
	"user-directory/internal/interface/api/rest/dto/user"
	"user-directory/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	r.GET(RouteUsers, uc.GetUsersHandler)
	r.GET(RouteUser, uc.GetUserHandler)
	r.POST(RouteUsers, uc.CreateUserHandler)
	r.PUT(RouteUser, uc.UpdateUserHandler)
	r.DELETE(RouteUser, uc.DeleteUserHandler)

	return uc
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	users, err := uc.userService.ListAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		uc.logger.Error("ListAllUsers() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	id, ok := uc.parseID(c)
	if !ok {
		return
	}

	fullName, err := uc.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		uc.writeError(c, "GetUser", id, err, "failed to get a user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"fullName": fullName})
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	// JSON body, or query/form parameters when no JSON content type is sent
	var req user.CreateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateCreate(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Name and surname cannot be empty",
			"details": errs,
		})
		return
	}

	name := validator.NormalizeName(*req.Name)
	id, err := uc.userService.AddUser(
		c.Request.Context(),
		name,
		validator.NormalizeName(*req.Surname),
	)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateID) {
			c.JSON(http.StatusConflict, gin.H{"error": "Failed to add user: " + err.Error()})
			return
		}
		uc.writeError(c, "AddUser", id, err, "failed to create a user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"message": fmt.Sprintf("%s added with ID: %d", name, id),
	})
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	id, ok := uc.parseID(c)
	if !ok {
		return
	}

	var req user.EditRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateEdit(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Name and surname cannot be empty",
			"details": errs,
		})
		return
	}

	err := uc.userService.EditUser(
		c.Request.Context(),
		id,
		validator.NormalizeName(*req.NewName),
		validator.NormalizeName(*req.NewSurname),
	)
	if err != nil {
		uc.writeError(c, "EditUser", id, err, "failed to update a user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User with ID %d updated successfully", id),
	})
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	id, ok := uc.parseID(c)
	if !ok {
		return
	}

	name, err := uc.userService.RemoveUser(c.Request.Context(), id)
	if err != nil {
		uc.writeError(c, "RemoveUser", id, err, "failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": name + " removed successfully"})
}

func (uc *UserController) parseID(c *gin.Context) (domain.ID, bool) {
	id, err := validator.ParseID(c.Param("user_id"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return 0, false
	}

	return domain.ID(id), true
}

func (uc *UserController) writeError(c *gin.Context, op string, id domain.ID, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": fmt.Sprintf("User not found with ID: %d", id)},
		)
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": capitalize(err.Error())})
	default:
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": fallback},
		)
		uc.logger.Error(op+"() error", zap.Error(err), zap.Int64("id", int64(id)))
	}
}

// capitalize turns a service error message into a sentence.
func capitalize(msg string) string {
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}

	return string(unicode.ToUpper(r)) + msg[size:]
}
