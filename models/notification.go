package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationGeneric      NotificationType = "generic"
	NotificationTaskAssigned NotificationType = "newTaskAssigned"
	NotificationTaskAccepted NotificationType = "taskAccepted"
	NotificationTaskRejected NotificationType = "taskRejectedByTeamMember"
)

// Notification is created only as a side effect of project/task mutations and
// afterwards mutated only to flip IsRead. RelatedTaskTitle is a snapshot, not a
// reference, so it survives task deletion or rename.
type Notification struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID      primitive.ObjectID `bson:"recipientId" json:"recipientId"`
	SenderID         primitive.ObjectID `bson:"senderId,omitempty" json:"senderId,omitempty"`
	Type             NotificationType   `bson:"type" json:"type"`
	Message          string             `bson:"message" json:"message"`
	Link             string             `bson:"link" json:"link"`
	RelatedProjectID primitive.ObjectID `bson:"relatedProjectId,omitempty" json:"relatedProjectId,omitempty"`
	RelatedTaskTitle string             `bson:"relatedTaskTitle,omitempty" json:"relatedTaskTitle,omitempty"`
	IsRead           bool               `bson:"isRead" json:"isRead"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
