package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name" binding:"required"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	FullDescription string             `json:"fullDescription,omitempty" bson:"fullDescription,omitempty"`
	Images          []string           `json:"images,omitempty" bson:"images,omitempty"`
	Price           float64            `json:"price" bson:"price" binding:"required"`
	OriginalPrice   float64            `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Discount        float64            `json:"discount,omitempty" bson:"discount,omitempty"`
	Rating          float64            `json:"rating,omitempty" bson:"rating,omitempty"`
	TotalReviews    int                `json:"totalReviews,omitempty" bson:"totalReviews,omitempty"`
	Tags            []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	ShopName        string             `json:"shopName,omitempty" bson:"shopName,omitempty"`
	ShopID          string             `json:"shopId,omitempty" bson:"shopId,omitempty"`
	Category        string             `json:"category,omitempty" bson:"category,omitempty"`
	Brand           string             `json:"brand,omitempty" bson:"brand,omitempty"`
	Material        string             `json:"material,omitempty" bson:"material,omitempty"`
	Care            string             `json:"care,omitempty" bson:"care,omitempty"`
	InStock         bool               `json:"inStock" bson:"inStock"`
	Sizes           []string           `json:"sizes,omitempty" bson:"sizes,omitempty"`
	NotifyEmails    []string           `json:"notifyEmails" bson:"notifyEmails"`
	CreatedAt       time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt       time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
