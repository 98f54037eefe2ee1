package validator

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"user-directory/internal/interface/api/rest/dto/user"
)

var ErrIDNotNumber = errors.New("ID must be a number")

// ParseID parses a path or shell argument into a user ID. Range checks
// (id <= 0) belong to the service.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrIDNotNumber
	}
	return id, nil
}

// NormalizeName trims s and converts it to Unicode NFC so that visually equal
// names are stored identically.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func ValidateCreate(r user.CreateRequest) map[string]string {
	errs := make(map[string]string)

	requireField(errs, "name", r.Name)
	requireField(errs, "surname", r.Surname)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateEdit(r user.EditRequest) map[string]string {
	errs := make(map[string]string)

	requireField(errs, "newName", r.NewName)
	requireField(errs, "newSurname", r.NewSurname)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func requireField(errs map[string]string, field string, v *string) {
	switch {
	case v == nil:
		errs[field] = field + " is required"
	case strings.TrimSpace(*v) == "":
		errs[field] = field + " cannot be empty"
	}
}
