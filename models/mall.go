package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SocialMedia holds the optional social links carried by malls and shops.
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
}

type Mall struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name" binding:"required"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	FullDescription string             `json:"fullDescription,omitempty" bson:"fullDescription,omitempty"`
	Image           string             `json:"image,omitempty" bson:"image,omitempty"`
	Images          []string           `json:"images,omitempty" bson:"images,omitempty"`
	Location        string             `json:"location,omitempty" bson:"location,omitempty"`
	Address         string             `json:"address,omitempty" bson:"address,omitempty"`
	Phone           string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email           string             `json:"email,omitempty" bson:"email,omitempty"`
	Website         string             `json:"website,omitempty" bson:"website,omitempty"`
	Rating          float64            `json:"rating,omitempty" bson:"rating,omitempty"`
	TotalReviews    int                `json:"totalReviews,omitempty" bson:"totalReviews,omitempty"`
	Tags            []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	Hours           map[string]string  `json:"hours,omitempty" bson:"hours,omitempty"`
	SocialMedia     *SocialMedia       `json:"socialMedia,omitempty" bson:"socialMedia,omitempty"`
	CreatedAt       time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}
