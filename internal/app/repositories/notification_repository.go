package repositories

import (
	"context"

	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/store"
)

// NotificationRepository handles the notifications collection
type NotificationRepository struct {
	t table[models.Notification]
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *store.DB) *NotificationRepository {
	return &NotificationRepository{t: newTable[models.Notification](db, store.Notifications, "notification")}
}

// Append stores a new unread notification
func (r *NotificationRepository) Append(ctx context.Context, n *models.Notification) error {
	if n.ID.IsZero() {
		n.ID = r.t.nextID()
	}
	n.IsRead = false
	n.ReadAt = nil
	n.CreatedAt = models.DateNow()
	return r.t.insert(ctx, *n, nil)
}

// GetByID retrieves a notification by ID
func (r *NotificationRepository) GetByID(ctx context.Context, id models.ObjectID) (*models.Notification, error) {
	return r.t.get(ctx, id)
}

// ListFor returns the notifications addressed to recipient, oldest first.
// With unreadOnly set read notifications are skipped.
func (r *NotificationRepository) ListFor(ctx context.Context, recipient models.ObjectID, typ models.NotificationType, unreadOnly bool) ([]models.Notification, error) {
	return r.t.filter(ctx, func(n *models.Notification) bool {
		if n.Recipient() != recipient {
			return false
		}
		if typ != "" && n.Type() != typ {
			return false
		}
		return !unreadOnly || !n.IsRead
	})
}

// List returns every notification
func (r *NotificationRepository) List(ctx context.Context) ([]models.Notification, error) {
	return r.t.all(ctx)
}

// MarkRead flags a notification read. Reading it twice keeps the first
// readAt.
func (r *NotificationRepository) MarkRead(ctx context.Context, id models.ObjectID) (*models.Notification, error) {
	return r.t.modify(ctx, id, func(n *models.Notification) error {
		if n.IsRead {
			return nil
		}
		now := models.DateNow()
		n.IsRead = true
		n.ReadAt = &now
		return nil
	}, nil)
}

// DeleteMany removes the listed notifications
func (r *NotificationRepository) DeleteMany(ctx context.Context, ids ...models.ObjectID) (int, error) {
	return r.t.removeIDs(ctx, ids...)
}
