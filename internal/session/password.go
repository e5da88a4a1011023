package session

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/kazz187/taskmarket/internal/user"
	"github.com/kazz187/taskmarket/pkg/cerr"
)

const minPasswordLen = 8

func errBadCredentials() error {
	return cerr.NewError(cerr.Unauthenticated, "invalid email or password", nil)
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", cerr.NewError(cerr.InvalidArgument, "password is too short", nil).
			WithViolation("password.min_len", "password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", cerr.NewError(cerr.InvalidArgument, "password is too long", err).
				WithViolation("password.max_len", "password must be at most 72 bytes")
		}
		return "", cerr.NewError(cerr.Internal, "server error", err)
	}
	return string(hash), nil
}

// checkPassword accepts the user's own password, or the demo password for
// accounts created without one.
func (s *Server) checkPassword(u *user.User, password string) error {
	if u.PasswordHash == "" {
		if password != s.demoPassword {
			return errBadCredentials()
		}
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return errBadCredentials()
	}
	return nil
}
