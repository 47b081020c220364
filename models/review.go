package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is immutable once created; there is no update or delete path.
type Review struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Reviewer is the public slice of the reviewing user attached on reads.
type Reviewer struct {
	ID       primitive.ObjectID `json:"id"`
	FullName string             `json:"fullName"`
	Email    string             `json:"email"`
}

// ReviewWithUser is a review with its reviewer resolved (read-side join).
type ReviewWithUser struct {
	Review
	User *Reviewer `json:"user,omitempty"`
}
