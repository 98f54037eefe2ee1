// Package shell is the line-oriented front end of the user directory. It
// reads one command per line and prints human-readable results.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"user-directory/internal/application/ports"
	"user-directory/internal/application/services"
	domain "user-directory/internal/domain/user"
	"user-directory/internal/interface/api/rest/validator"
)

const prompt = "> "

var helpLines = []string{
	"  add <name> <surname> - Add a new user",
	"  get <id> - Get user by ID",
	"  remove <id> - Remove user by ID",
	"  edit <id> <newName> <newSurname> - Edit user details",
	"  list - List all users",
	"  help - Show this help",
	"  exit - Exit the application",
}

type Shell struct {
	userService ports.UserService
	logger      *zap.Logger
	in          io.Reader
	out         io.Writer
}

func New(userService ports.UserService, logger *zap.Logger, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		userService: userService,
		logger:      logger,
		in:          in,
		out:         out,
	}
}

// Run serves commands until "exit", end of input or ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		readErr <- sc.Err()
	}()

	s.println("Welcome to User Management System")
	s.println("Available commands:")
	s.printHelp()

	for {
		fmt.Fprint(s.out, prompt)

		select {
		case <-ctx.Done():
			s.println()
			return nil
		case line, ok := <-lines:
			if !ok {
				s.println("No input available. Exiting...")
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("shell read: %w", err)
					}
				default:
				}
				return nil
			}
			if !s.Execute(ctx, line) {
				return nil
			}
		}
	}
}

// Execute runs a single command line and reports whether the shell should
// keep going.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		s.printHelp()
		return true
	}

	switch strings.ToLower(parts[0]) {
	case "add":
		if len(parts) < 3 {
			s.println("Usage: add <name> <surname>")
			break
		}
		s.add(ctx, parts[1], parts[2])
	case "get":
		if len(parts) < 2 {
			s.println("Usage: get <id>")
			break
		}
		if id, ok := s.parseID(parts[1]); ok {
			s.get(ctx, id)
		}
	case "remove":
		if len(parts) < 2 {
			s.println("Usage: remove <id>")
			break
		}
		if id, ok := s.parseID(parts[1]); ok {
			s.remove(ctx, id)
		}
	case "edit":
		if len(parts) < 4 {
			s.println("Usage: edit <id> <newName> <newSurname>")
			break
		}
		if id, ok := s.parseID(parts[1]); ok {
			s.edit(ctx, id, parts[2], parts[3])
		}
	case "list":
		s.list(ctx)
	case "help":
		s.printHelp()
	case "exit":
		s.println("Exiting application...")
		return false
	default:
		s.println("Unknown command. Type 'help' for available commands.")
	}

	s.printHelp()

	return true
}

func (s *Shell) add(ctx context.Context, name, surname string) {
	id, err := s.userService.AddUser(ctx, name, surname)
	switch {
	case err == nil:
		s.printf("%s added with ID: %d\n", name, id)
	case errors.Is(err, services.ErrEmptyName):
		s.println("Error: Name and surname cannot be empty")
	case errors.Is(err, services.ErrDuplicateID):
		s.println("Failed to add user: " + err.Error())
	default:
		s.fail("AddUser", err)
	}
}

func (s *Shell) get(ctx context.Context, id domain.ID) {
	fullName, err := s.userService.GetUser(ctx, id)
	if err != nil {
		s.report("GetUser", id, err)
		return
	}
	s.println("Hello " + fullName)
}

func (s *Shell) remove(ctx context.Context, id domain.ID) {
	name, err := s.userService.RemoveUser(ctx, id)
	if err != nil {
		s.report("RemoveUser", id, err)
		return
	}
	s.println(name + " removed successfully")
}

func (s *Shell) edit(ctx context.Context, id domain.ID, newName, newSurname string) {
	if err := s.userService.EditUser(ctx, id, newName, newSurname); err != nil {
		s.report("EditUser", id, err)
		return
	}
	s.printf("User with ID %d updated successfully\n", id)
}

func (s *Shell) list(ctx context.Context) {
	users, err := s.userService.ListAllUsers(ctx)
	if err != nil {
		s.fail("ListAllUsers", err)
		return
	}
	if len(users) == 0 {
		s.println("No users found")
		return
	}

	s.println("All users:")
	for _, u := range users {
		s.printf("ID: %d, Name: %s %s\n", u.ID, u.Name, u.Surname)
	}
}

func (s *Shell) report(op string, id domain.ID, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		s.printf("User not found with ID: %d\n", id)
	case errors.Is(err, services.ErrInvalidID):
		s.println("Error: Invalid ID")
	case errors.Is(err, services.ErrInvalidEdit):
		s.println("Error: Invalid ID or name/surname cannot be empty")
	default:
		s.fail(op, err)
	}
}

func (s *Shell) fail(op string, err error) {
	s.logger.Error(op+"() error", zap.Error(err))
	s.println("Error: " + err.Error())
}

func (s *Shell) parseID(arg string) (domain.ID, bool) {
	id, err := validator.ParseID(arg)
	if err != nil {
		s.println("Error: " + err.Error())
		return 0, false
	}
	return domain.ID(id), true
}

func (s *Shell) printHelp() {
	for _, l := range helpLines {
		s.println(l)
	}
}

func (s *Shell) println(a ...any)               { fmt.Fprintln(s.out, a...) }
func (s *Shell) printf(format string, a ...any) { fmt.Fprintf(s.out, format, a...) }
