package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/repositories"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/pkg/auth"
)

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID models.ObjectID
	Role   models.Role
}

// IsAdmin reports whether the actor is an administrator
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// pairedWrite runs two writes that belong together across collections.
// When second fails, undo reverts first. If undo fails as well the records
// named by orphans are left behind and a PartialWriteError says so.
func pairedWrite(op string, first, second, undo func() error, orphans func() map[string][]string) error {
	if err := first(); err != nil {
		return err
	}
	err := second()
	if err == nil {
		return nil
	}
	if undoErr := undo(); undoErr != nil {
		return &apperrors.PartialWriteError{
			Op:      op,
			Orphans: orphans(),
			Cause:   errors.Join(err, undoErr),
		}
	}
	return err
}

// newAccount builds a user with a hashed password
func newAccount(email, password, firstName, lastName string, role models.Role) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	active := true
	return &models.User{
		Email:     email,
		Password:  hash,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		IsActive:  &active,
	}, nil
}

// ensureEmailFree fails early with a conflict so no password is hashed for
// a request that cannot succeed. The repository still enforces uniqueness.
func ensureEmailFree(ctx context.Context, users *repositories.UserRepository, email string) error {
	exists, err := users.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return apperrors.Conflict("user with email %s already exists", repositories.NormalizeEmail(email)).WithField("email")
	}
	return nil
}

// deleteUserIfPresent removes a profile's user. A user that is already gone
// is not an error.
func deleteUserIfPresent(ctx context.Context, users *repositories.UserRepository, id models.ObjectID) error {
	_, err := users.Delete(ctx, id)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

// applyNames merges optional first and last name changes into a user
func applyNames(ctx context.Context, users *repositories.UserRepository, id models.ObjectID, firstName, lastName *string) error {
	if firstName == nil && lastName == nil {
		return nil
	}
	_, err := users.Update(ctx, id, func(u *models.User) error {
		if firstName != nil {
			u.FirstName = *firstName
		}
		if lastName != nil {
			u.LastName = *lastName
		}
		return nil
	})
	return err
}
