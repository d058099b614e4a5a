package repositories

import (
	"context"
	"fmt"

	"github.com/MArjun666/ProjectFlow-fullstack-app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository stores per-recipient event records. Notifications are
// never deleted; only the read flag is ever updated.
type NotificationRepository interface {
	Insert(ctx context.Context, notification *models.Notification) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	FindByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.Notification, error)
	CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) error
}

type MongoNotificationRepository struct {
	collection *mongo.Collection
}

func NewMongoNotificationRepository(collection *mongo.Collection) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: collection}
}

func (r *MongoNotificationRepository) Insert(ctx context.Context, notification *models.Notification) error {
	result, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %v", err)
	}
	notification.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoNotificationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	var notification models.Notification
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&notification)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notification: %v", err)
	}
	return &notification, nil
}

// FindByRecipient returns the recipient's notifications newest first.
func (r *MongoNotificationRepository) FindByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"recipientId": recipientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %v", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %v", err)
	}
	return notifications, nil
}

func (r *MongoNotificationRepository) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"recipientId": recipientID, "isRead": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %v", err)
	}
	return count, nil
}

func (r *MongoNotificationRepository) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %v", err)
	}
	return nil
}

func (r *MongoNotificationRepository) MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) error {
	filter := bson.M{"recipientId": recipientID, "isRead": false}
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %v", err)
	}
	return nil
}
