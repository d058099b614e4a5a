package services

import (
	"context"

	"github.com/MArjun666/ProjectFlow-fullstack-app/models"
	"github.com/MArjun666/ProjectFlow-fullstack-app/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationList is the payload for the notification listing: the rendered
// notifications newest first plus an independently counted unread total.
type NotificationList struct {
	Data        []models.NotificationResponse `json:"data"`
	UnreadCount int64                         `json:"unreadCount"`
}

type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
}

func NewNotificationService(notifications repositories.NotificationRepository, users repositories.UserRepository) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
	}
}

// ListForUser returns the actor's notifications newest first with the unread
// count from a separate count query.
func (s *NotificationService) ListForUser(ctx context.Context, actor *models.User) (*NotificationList, error) {
	notifications, err := s.notifications.FindByRecipient(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.notifications.CountUnread(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	sendersByID, err := s.resolveSenders(ctx, notifications)
	if err != nil {
		return nil, err
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, models.NewNotificationResponse(&notifications[i], sendersByID[notifications[i].SenderID]))
	}

	return &NotificationList{Data: responses, UnreadCount: unreadCount}, nil
}

// MarkAsRead flips the read flag on a single notification. Only the recipient
// may do this.
func (s *NotificationService) MarkAsRead(ctx context.Context, actor *models.User, notificationID string) error {
	id, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return notFoundf("Notification not found")
	}

	notification, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return notFoundf("Notification not found")
	}
	if notification.RecipientID != actor.ID {
		return forbiddenf("User not authorized to update this notification")
	}

	return s.notifications.MarkRead(ctx, id)
}

// MarkAllAsRead flips the read flag on every unread notification for the
// actor; calling it with nothing unread is a no-op.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, actor *models.User) error {
	return s.notifications.MarkAllRead(ctx, actor.ID)
}

func (s *NotificationService) resolveSenders(ctx context.Context, notifications []models.Notification) (map[primitive.ObjectID]*models.User, error) {
	seen := make(map[primitive.ObjectID]bool)
	ids := []primitive.ObjectID{}
	for i := range notifications {
		senderID := notifications[i].SenderID
		if !senderID.IsZero() && !seen[senderID] {
			seen[senderID] = true
			ids = append(ids, senderID)
		}
	}

	users, err := s.users.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	sendersByID := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		sendersByID[users[i].ID] = &users[i]
	}
	return sendersByID, nil
}
