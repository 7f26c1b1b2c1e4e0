package repositories

import (
	"context"
	"strings"

	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/store"
)

// UserRepository handles the users collection
type UserRepository struct {
	t table[models.User]
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *store.DB) *UserRepository {
	return &UserRepository{t: newTable[models.User](db, store.Users, "user")}
}

// NormalizeEmail is the form emails are stored and compared in
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores a new user. The id and timestamps are assigned here.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)
	if user.ID.IsZero() {
		user.ID = r.t.nextID()
	}
	now := models.DateNow()
	user.CreatedAt, user.UpdatedAt = now, now

	return r.t.insert(ctx, *user, func(users []models.User) error {
		for _, u := range users {
			if u.Email == user.Email {
				return apperrors.Conflict("user with email %s already exists", user.Email).WithField("email")
			}
		}
		return nil
	})
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id models.ObjectID) (*models.User, error) {
	return r.t.get(ctx, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = NormalizeEmail(email)
	user, err := r.t.find(ctx, func(u *models.User) bool { return u.Email == email })
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user", email)
	}
	return user, nil
}

// EmailExists checks whether an email is taken
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	email = NormalizeEmail(email)
	user, err := r.t.find(ctx, func(u *models.User) bool { return u.Email == email })
	return user != nil, err
}

// List returns all users
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.t.all(ctx)
}

// Update applies fn to the user and refreshes updatedAt. A changed email
// must stay unique.
func (r *UserRepository) Update(ctx context.Context, id models.ObjectID, fn func(*models.User) error) (*models.User, error) {
	return r.t.modify(ctx, id, func(u *models.User) error {
		if err := fn(u); err != nil {
			return err
		}
		u.Email = NormalizeEmail(u.Email)
		u.UpdatedAt = models.DateNow()
		return nil
	}, func(u *models.User, others []models.User) error {
		for _, o := range others {
			if o.Email == u.Email {
				return apperrors.Conflict("user with email %s already exists", u.Email).WithField("email")
			}
		}
		return nil
	})
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id models.ObjectID) (*models.User, error) {
	return r.t.remove(ctx, id, nil)
}

// DeleteMany removes every listed user that exists
func (r *UserRepository) DeleteMany(ctx context.Context, ids ...models.ObjectID) (int, error) {
	return r.t.removeIDs(ctx, ids...)
}

// Restore puts a previously deleted user back unchanged
func (r *UserRepository) Restore(ctx context.Context, user models.User) error {
	return r.t.insert(ctx, user, func(users []models.User) error {
		if indexOf(users, user.ID) >= 0 {
			return apperrors.Conflict("user %s already exists", user.ID)
		}
		return nil
	})
}
