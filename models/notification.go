package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ChannelEmail = "email"

	StatusSent   = "sent"
	StatusFailed = "failed"
)

// NotificationLog records one restock send attempt, successful or not.
type NotificationLog struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Recipient string             `json:"recipient" bson:"recipient"`
	Channel   string             `json:"channel" bson:"channel"`
	Status    string             `json:"status" bson:"status"`
	Error     string             `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
